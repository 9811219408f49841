package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"stayhub/config"
	outboxRepo "stayhub/database/repository/outbox"
	"stayhub/models"
	"stayhub/services/reservation"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingEvent    = "booking:event"
	TypeCompletionSweep = "booking:completion_sweep"

	outboxPollInterval  = 15 * time.Second
	outboxBatchSize     = 100
	completionSweepEach = time.Hour
	completionBatchSize = 200
)

// Notifier receives dispatched booking events. The default implementation
// only logs; real delivery belongs to the notification collaborator.
type Notifier interface {
	Notify(ctx context.Context, event models.BookingEvent) error
}

// LogNotifier satisfies Notifier by logging each event.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, event models.BookingEvent) error {
	log.Printf("[Notifier] %s for booking %s (listing %s)", event.Type, event.BookingID, event.ListingID)
	return nil
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitWorker runs the async worker in background: it consumes booking events
// fed from the outbox and the periodic completion sweep.
func InitWorker(ledger reservation.Ledger, outbox outboxRepo.Repository, notifier Notifier) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingEvent, handleBookingEventTask(notifier))
	mux.HandleFunc(TypeCompletionSweep, handleCompletionSweep(ledger))

	go func() {
		log.Println("[Worker] Starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed to start worker: %v", err)
		}
	}()

	client := asynq.NewClient(redisOpts())
	go dispatchOutboxLoop(client, outbox)
	go scheduleCompletionSweeps(client)
}

// dispatchOutboxLoop drains pending outbox records into the queue. Events are
// marked dispatched only after a successful enqueue, so at-least-once delivery
// holds across restarts.
func dispatchOutboxLoop(client *asynq.Client, outbox outboxRepo.Repository) {
	ticker := time.NewTicker(outboxPollInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		events, err := outbox.ListPending(ctx, outboxBatchSize)
		if err != nil {
			log.Printf("[Worker] Failed to list pending events: %v", err)
			cancel()
			continue
		}

		var dispatched []string
		for _, event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("[Worker] Failed to marshal event %s: %v", event.ID, err)
				continue
			}
			if _, err := client.EnqueueContext(ctx, asynq.NewTask(TypeBookingEvent, payload)); err != nil {
				log.Printf("[Worker] Failed to enqueue event %s: %v", event.ID, err)
				continue
			}
			dispatched = append(dispatched, event.ID)
		}
		if len(dispatched) > 0 {
			if err := outbox.MarkDispatched(ctx, dispatched); err != nil {
				log.Printf("[Worker] Failed to mark events dispatched: %v", err)
			}
		}
		cancel()
	}
}

func handleBookingEventTask(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.BookingEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			log.Printf("[Worker] Invalid event payload: %v", err)
			return err
		}
		return notifier.Notify(ctx, event)
	}
}

// scheduleCompletionSweeps enqueues the periodic sweep that moves confirmed
// bookings with elapsed stays to completed.
func scheduleCompletionSweeps(client *asynq.Client) {
	ticker := time.NewTicker(completionSweepEach)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := client.Enqueue(asynq.NewTask(TypeCompletionSweep, nil)); err != nil {
			log.Printf("[Worker] Failed to enqueue completion sweep: %v", err)
		}
	}
}

func handleCompletionSweep(ledger reservation.Ledger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		today := time.Now().UTC().Format(models.DateLayout)
		due, err := ledger.ListDueForCompletion(ctx, today, completionBatchSize)
		if err != nil {
			log.Printf("[Worker] Completion sweep query failed: %v", err)
			return err
		}
		for _, booking := range due {
			if _, err := ledger.Complete(ctx, booking.ID); err != nil {
				// A lost CAS means something else already moved the booking.
				log.Printf("[Worker] Could not complete booking %s: %v", booking.ID, err)
			}
		}
		return nil
	}
}
