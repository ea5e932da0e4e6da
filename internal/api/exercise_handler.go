package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API ---

// LogExerciseRequest accepts JSON or urlencoded bodies. Fields are kept as
// raw text and checked by the service after the user lookup, so an unknown
// user is reported before a missing or malformed field.
type LogExerciseRequest struct {
	Description bodyValue `form:"description" json:"description"`
	Duration    bodyValue `form:"duration" json:"duration"`
	Date        bodyValue `form:"date" json:"date"`
}

// bodyValue holds a JSON string or bare scalar as text, so "30" and 30 bind
// the same way they do in a form body.
type bodyValue string

func (v *bodyValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = bodyValue(s)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a scalar, got %s", data)
	default:
		*v = bodyValue(data)
	}
	return nil
}

// ExerciseResponse is returned after logging an exercise. ID and Username
// belong to the owning user.
type ExerciseResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// LogEntry is one exercise in a log response.
type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogResponse is a user's filtered exercise history. Username and ID are
// omitted when the user does not exist.
type LogResponse struct {
	Username string     `json:"username,omitempty"`
	ID       string     `json:"id,omitempty"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// MapExerciseToResponse builds the logging response for user's exercise.
func MapExerciseToResponse(user *domain.User, ex *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Date:        domain.FormatDate(ex.Date),
		Duration:    ex.Duration,
		Description: ex.Description,
	}
}

// MapLogToResponse converts a service log to its response shape.
func MapLogToResponse(log *service.ExerciseLog) LogResponse {
	entries := make([]LogEntry, len(log.Exercises))
	for i, ex := range log.Exercises {
		entries[i] = LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        domain.FormatDate(ex.Date),
		}
	}

	resp := LogResponse{Count: len(entries), Log: entries}
	if log.User != nil {
		resp.Username = log.User.Username
		resp.ID = log.User.ID.Hex()
	}
	return resp
}

// --- Handler Methods ---

// LogExercise godoc
// @Summary Log an exercise for a user
// @Tags Exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "User ObjectID Hex"
// @Param exercise body LogExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 200 {object} ErrorResponse "User not found / Error logging exercise"
// @Router /users/{id}/exercises [post]
func (h *ExerciseHandler) LogExercise(c *gin.Context) {
	var req LogExerciseRequest
	// A decode failure is handed to the service, which reports it only once
	// the user is known to exist.
	bindErr := c.ShouldBind(&req)

	user, exercise, err := h.exerciseService.LogExercise(c.Request.Context(), c.Param("id"), service.LogExerciseInput{
		Description: string(req.Description),
		Duration:    string(req.Duration),
		Date:        string(req.Date),
		Malformed:   bindErr,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, operationLogExercise, msgUserNotFound, err)
		} else {
			respondError(c, operationLogExercise, msgLogExercise, err)
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(user, exercise))
}

// GetLog godoc
// @Summary Get a user's exercise log
// @Tags Exercises
// @Produce json
// @Param id path string true "User ObjectID Hex"
// @Param from query string false "Inclusive lower date bound"
// @Param to query string false "Inclusive upper date bound"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} LogResponse
// @Failure 200 {object} ErrorResponse "Error retrieving exercise logs"
// @Router /users/{id}/logs [get]
func (h *ExerciseHandler) GetLog(c *gin.Context) {
	log, err := h.exerciseService.GetLog(c.Request.Context(), c.Param("id"), service.LogQuery{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		respondError(c, operationGetLog, msgRetrieveLogs, err)
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(log))
}
