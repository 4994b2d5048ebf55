package dto

import (
	"database/sql"
	"lodge/internal/domains/customer/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name        string `json:"name"          validate:"required,max=100"`
	Email       string `json:"email"         validate:"required,email,max=100"`
	Phone       string `json:"phone"         validate:"omitempty,max=30"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	dob := sql.NullTime{}
	if c.DateOfBirth != constant.Empty {
		if parsed, err := time.Parse(constant.DayFormat, c.DateOfBirth); err == nil {
			dob = sql.NullTime{Time: parsed, Valid: true}
		}
	}

	return model.Customer{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		DateOfBirth: dob,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name  string `db:"name"  json:"name"  validate:"omitempty,max=100"`
	Email string `db:"email" json:"email" validate:"omitempty,email,max=100"`
	Phone string `db:"phone" json:"phone" validate:"omitempty,max=30"`
}

type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	gDto.Metadata
}

func (c *CustomerResponse) FromModel(model model.Customer) {
	c.ID = model.ID
	c.Name = model.Name
	c.Email = model.Email
	c.Phone = model.Phone

	if model.DateOfBirth.Valid {
		c.DateOfBirth = model.DateOfBirth.Time.Format(constant.DayFormat)
	}

	c.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (c *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	c.TotalData = totalData
	c.TotalPage = shared.CalculateTotalPage(totalData, limit)

	c.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		c.Customers[i].FromModel(mod)
	}
}
