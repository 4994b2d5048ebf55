package model

import "lodge/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldRating      = "rating"
)

type Hotel struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Address     string `db:"address"`
	Rating      int    `db:"rating"`
	model.Metadata
}
