package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alcyxob/exercise-tracker/internal/metrics"
	"github.com/alcyxob/exercise-tracker/internal/repository"
	"github.com/alcyxob/exercise-tracker/internal/service"
)

// Fixed error messages returned to clients.
const (
	msgUsernameTaken     = "Username already taken"
	msgFetchUsers        = "Error fetching users"
	msgUserNotFound      = "User not found"
	msgLogExercise       = "Error logging exercise"
	msgRetrieveLogs      = "Error retrieving exercise logs"
	operationRegister    = "register_user"
	operationListUsers   = "list_users"
	operationLogExercise = "log_exercise"
	operationGetLog      = "get_log"
)

// ErrorResponse is the body of every handler level failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError writes a failure as HTTP 200 with an error field. Clients
// tell failures apart by the presence of "error", not by status code.
func respondError(c *gin.Context, operation, message string, err error) {
	log := loggerFromContext(c)
	event := log.Error()
	if isClientError(err) {
		event = log.Warn()
	}
	event.Err(err).Str("operation", operation).Msg(message)

	metrics.HandlerErrorsTotal.WithLabelValues(operation).Inc()
	c.JSON(http.StatusOK, ErrorResponse{Error: message})
}

func isClientError(err error) bool {
	return errors.Is(err, service.ErrUsernameTaken) ||
		errors.Is(err, service.ErrUserNotFound) ||
		errors.Is(err, service.ErrValidationFailed) ||
		errors.Is(err, service.ErrInvalidDate) ||
		errors.Is(err, repository.ErrInvalidID)
}
