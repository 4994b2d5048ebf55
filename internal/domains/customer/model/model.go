package model

import (
	"database/sql"
	"lodge/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldDateOfBirth = "date_of_birth"
)

type Customer struct {
	ID          string       `db:"id"`
	Name        string       `db:"name"`
	Email       string       `db:"email"`
	Phone       string       `db:"phone"`
	DateOfBirth sql.NullTime `db:"date_of_birth"`
	model.Metadata
}
