package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"lodge/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	result := failure.NotFound("reservation not found")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusNotFound {
		t.Errorf("expected code to be %d, got %d", http.StatusNotFound, f.Code)
	}
	if f.Kind != failure.KindNotFound {
		t.Errorf("expected kind to be %s, got %s", failure.KindNotFound, f.Kind)
	}
}

func TestInvalidRange(t *testing.T) {
	result := failure.InvalidRange("check-out must be after check-in")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusBadRequest {
		t.Errorf("expected code to be %d, got %d", http.StatusBadRequest, f.Code)
	}
	if !failure.IsKind(result, failure.KindInvalidRange) {
		t.Errorf("expected kind to be %s, got %s", failure.KindInvalidRange, f.Kind)
	}
}

func TestRoomUnavailable(t *testing.T) {
	result := failure.RoomUnavailable(101, "res-42")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusConflict {
		t.Errorf("expected code to be %d, got %d", http.StatusConflict, f.Code)
	}
	if !failure.IsKind(result, failure.KindRoomUnavailable) {
		t.Errorf("expected kind to be %s, got %s", failure.KindRoomUnavailable, f.Kind)
	}
	if !strings.Contains(f.Message, "res-42") {
		t.Errorf("expected message to reference the conflicting reservation, got %s", f.Message)
	}
	if !strings.Contains(f.Message, "101") {
		t.Errorf("expected message to reference the room number, got %s", f.Message)
	}
}

func TestRoomUnavailableUnknownRoom(t *testing.T) {
	result := failure.RoomUnavailable(0, "")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if !failure.IsKind(result, failure.KindRoomUnavailable) {
		t.Errorf("expected kind to be %s, got %s", failure.KindRoomUnavailable, f.Kind)
	}
	if strings.Contains(f.Message, "0") {
		t.Errorf("expected message to omit the room number when unknown, got %s", f.Message)
	}
}

func TestInvalidTransition(t *testing.T) {
	result := failure.InvalidTransition("ARRIVED", "CANCELLED")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected code to be %d, got %d", http.StatusUnprocessableEntity, f.Code)
	}
	if !strings.Contains(f.Message, "ARRIVED") || !strings.Contains(f.Message, "CANCELLED") {
		t.Errorf("expected message to name both states, got %s", f.Message)
	}
}

func TestIntegrityViolation(t *testing.T) {
	result := failure.IntegrityViolation("hotel still has rooms")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusConflict {
		t.Errorf("expected code to be %d, got %d", http.StatusConflict, f.Code)
	}
	if !failure.IsKind(result, failure.KindIntegrityViolation) {
		t.Errorf("expected kind to be %s, got %s", failure.KindIntegrityViolation, f.Kind)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("booking failed: %w", failure.RoomUnavailable(101, "res-1")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	if failure.IsKind(errors.New("plain"), failure.KindNotFound) {
		t.Error("plain errors should not match any kind")
	}

	wrapped := fmt.Errorf("outer: %w", failure.NotFound("room not found"))
	if !failure.IsKind(wrapped, failure.KindNotFound) {
		t.Error("wrapped failures should match their kind")
	}
}
