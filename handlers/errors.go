package handlers

import (
	"errors"
	"net/http"

	"stayhub/models"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP responses in one place.
// Overbooked and validation failures carry enough detail for the client to
// self-correct; storage failures surface as a generic retryable error with no
// internal detail.
func respondError(c *gin.Context, err error) {
	var validation *models.ValidationError
	var overbooked *models.OverbookedError
	var notFound *models.NotFoundError
	var transition *models.StateTransitionError

	switch {
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "validation_error", validation.Error())
	case errors.As(err, &overbooked):
		c.JSON(http.StatusConflict, gin.H{
			"error": "overbooked",
			"date":  overbooked.Date,
		})
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "not_found", notFound.Error())
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{
			"error":  "invalid_state_transition",
			"status": transition.From,
		})
	case errors.Is(err, models.ErrStorage):
		utils.JSONError(c, http.StatusServiceUnavailable, "temporarily_unavailable", "please retry shortly")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}
