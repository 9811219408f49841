// File: stayhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhub/config"
	"stayhub/cron"
	"stayhub/database"
	bookingRepo "stayhub/database/repository/booking"
	listingRepo "stayhub/database/repository/listing"
	outboxRepo "stayhub/database/repository/outbox"
	slotRepo "stayhub/database/repository/slot"
	"stayhub/handlers"
	"stayhub/middleware"
	"stayhub/models"
	"stayhub/routes"
	"stayhub/services/payment"
	"stayhub/services/reservation"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	slots := slotRepo.NewMongoSlotStore()
	bookings := bookingRepo.NewMongoBookingRepo()
	listings := listingRepo.NewMongoListingRepo()
	outbox := outboxRepo.NewMongoOutboxRepo()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := slots.EnsureIndexes(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to create slot indexes: %v", err)
		}
		if err := bookings.EnsureIndexes(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
		}
		cancel()
	}

	// services.
	fallbackPolicy := models.CancellationPolicy{
		FullRefundDays:    config.AppConfig.FullRefundDays,
		PartialRefundDays: config.AppConfig.PartialRefundDays,
		PartialRefundRate: config.AppConfig.PartialRefundRate,
	}
	ledger := reservation.NewLedger(slots, bookings, listings, outbox, utils.GetCacheClient(), fallbackPolicy)
	intentService := payment.NewStripeIntentService(ledger, logger)

	listingHandler := handlers.NewListingHandler(ledger)
	bookingHandler := handlers.NewBookingHandler(ledger)
	paymentHandler := handlers.NewPaymentHandler(intentService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetAvailabilityHandler: listingHandler.GetAvailabilityHandler,
		QuotePricingHandler:    listingHandler.QuotePricingHandler,
		SetupSlotsHandler:      listingHandler.SetupSlotsHandler,
		BlockDateHandler:       listingHandler.BlockDateHandler,

		CreateBookingHandler:   bookingHandler.CreateBookingHandler,
		GetBookingHandler:      bookingHandler.GetBookingHandler,
		CancelBookingHandler:   bookingHandler.CancelBookingHandler,
		ConfirmBookingHandler:  bookingHandler.ConfirmBookingHandler,
		CompleteBookingHandler: bookingHandler.CompleteBookingHandler,
		NoShowBookingHandler:   bookingHandler.NoShowBookingHandler,

		CreatePaymentIntentHandler: paymentHandler.CreatePaymentIntentHandler,
		StripeWebhookHandler:       paymentHandler.StripeWebhookHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker: outbox dispatch and the completion sweep.
	cron.InitWorker(ledger, outbox, cron.LogNotifier{})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
