package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldNumber    = "number"
	FieldType      = "type"
	FieldHotelID   = "hotel_id"
	FieldAvailable = "available"
)

// Room is keyed by a room number that is unique across the whole
// system, not per hotel. Available is a derived snapshot of "no active
// reservation covers today"; it is recomputed by reconciliation and
// never consulted when validating a booking.
type Room struct {
	Number    int    `db:"number"`
	Type      string `db:"type"`
	HotelID   string `db:"hotel_id"`
	Available bool   `db:"available"`
	model.Metadata
}
