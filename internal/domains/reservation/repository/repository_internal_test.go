package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"lodge/shared/constant"
)

func TestReconcileQueryBounds(t *testing.T) {
	query := reconcileQuery()

	assert.Contains(t, query, "UPDATE rooms SET available = NOT EXISTS")
	assert.Contains(t, query, "reservations.room_number = rooms.number")
	assert.Contains(t, query, "reservations.status != :cancelled")

	// Half-open stay semantics: a room is occupied today when
	// check_in <= today < check_out, so the checkout day itself
	// leaves the room available.
	assert.Contains(t, query, "reservations.check_in <= :today")
	assert.Contains(t, query, "reservations.check_out > :today")
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		wants bool
	}{
		{
			name:  "serialization failure",
			err:   &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeSerializationFailure)},
			wants: true,
		},
		{
			name:  "deadlock detected",
			err:   &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeDeadlockDetected)},
			wants: true,
		},
		{
			name:  "unique violation",
			err:   &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)},
			wants: false,
		},
		{
			name:  "plain error",
			err:   errors.New("connection reset"),
			wants: false,
		},
		{
			name:  "nil",
			err:   nil,
			wants: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, IsSerializationFailure(tt.err))
		})
	}
}
