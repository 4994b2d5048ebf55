package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/reservation/model"
	"lodge/shared/failure"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, model.ValidStatus(model.StatusBooked))
	assert.True(t, model.ValidStatus(model.StatusArrived))
	assert.True(t, model.ValidStatus(model.StatusCancelled))
	assert.False(t, model.ValidStatus("CHECKED_OUT"))
	assert.False(t, model.ValidStatus(""))
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{
			name:    "booked to arrived",
			from:    model.StatusBooked,
			to:      model.StatusArrived,
			wantErr: false,
		},
		{
			name:    "booked to cancelled",
			from:    model.StatusBooked,
			to:      model.StatusCancelled,
			wantErr: false,
		},
		{
			name:    "arrived to cancelled rejected",
			from:    model.StatusArrived,
			to:      model.StatusCancelled,
			wantErr: true,
		},
		{
			name:    "arrived to booked rejected",
			from:    model.StatusArrived,
			to:      model.StatusBooked,
			wantErr: true,
		},
		{
			name:    "cancelled to booked rejected",
			from:    model.StatusCancelled,
			to:      model.StatusBooked,
			wantErr: true,
		},
		{
			name:    "cancelled to arrived rejected",
			from:    model.StatusCancelled,
			to:      model.StatusArrived,
			wantErr: true,
		},
		{
			name:    "unknown status rejected",
			from:    "CHECKED_OUT",
			to:      model.StatusCancelled,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.Transition(tt.from, tt.to)

			if tt.wantErr {
				assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
