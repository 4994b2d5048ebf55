package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a Failure beyond its HTTP status code so callers can
// branch on the condition rather than parse messages.
type Kind string

const (
	KindInvalidRange       Kind = "invalid_range"
	KindRoomUnavailable    Kind = "room_unavailable"
	KindNotFound           Kind = "not_found"
	KindInvalidTransition  Kind = "invalid_transition"
	KindIntegrityViolation Kind = "integrity_violation"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// InvalidRange reports a date range whose check-out does not fall strictly
// after its check-in.
func InvalidRange(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidRange,
		Message: msg,
	}
}

// RoomUnavailable reports a booking conflict. The conflicting reservation id
// is part of the message so callers can show which stay blocks the request.
func RoomUnavailable(roomNumber int, conflictingReservationID string) error {
	msg := "the room is unavailable for the requested dates"
	if roomNumber > 0 {
		msg = fmt.Sprintf("room %d is unavailable for the requested dates", roomNumber)
	}

	if conflictingReservationID != "" {
		msg = fmt.Sprintf("%s (conflicts with reservation %s)", msg, conflictingReservationID)
	}

	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindRoomUnavailable,
		Message: msg,
	}
}

// InvalidTransitionFromString reports an illegal lifecycle move with a
// caller-provided message.
func InvalidTransitionFromString(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidTransition,
		Message: msg,
	}
}

// InvalidTransition reports an illegal reservation lifecycle move.
func InvalidTransition(from, to string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot transition reservation from %s to %s", from, to),
	}
}

// IntegrityViolation reports a delete that would orphan an active reference.
func IntegrityViolation(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindIntegrityViolation,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind == kind
	}

	return false
}
