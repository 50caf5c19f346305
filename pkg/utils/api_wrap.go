package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithCode(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithCode(c, http.StatusCreated, data, message)
}

func RespondWithCode(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinels to HTTP responses. Anything
// unrecognised is logged by the request logger and reported as a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNoWeekdays),
		errors.Is(err, ErrInvalidWeekday),
		errors.Is(err, ErrInvalidTime),
		errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidTag),
		errors.Is(err, ErrInvalidTimeOfDay),
		errors.Is(err, ErrInvalidScore),
		errors.Is(err, ErrFutureDate),
		errors.Is(err, ErrInvalidMonth),
		errors.Is(err, ErrInvalidTestType),
		errors.Is(err, ErrInvalidAnswers),
		errors.Is(err, ErrInvalidTimezone),
		errors.Is(err, ErrHabitInactive):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrHabitNotFound),
		errors.Is(err, ErrResultNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrHabitLimitReached),
		errors.Is(err, ErrCheckInExists):
		RespondError(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
