package dto

import (
	"lodge/internal/domains/hotel/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateHotelRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Address     string `json:"address"     validate:"omitempty,max=200"`
	Rating      int    `json:"rating"      validate:"omitempty,gte=0,lte=5"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	return model.Hotel{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		Rating:      c.Rating,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHotelRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
	Address     string `db:"address"     json:"address"     validate:"omitempty,max=200"`
	Rating      *int   `db:"rating"      json:"rating"      validate:"omitempty,gte=0,lte=5"`
}

type HotelResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Rating      int    `json:"rating"`
	gDto.Metadata
}

func (h *HotelResponse) FromModel(model model.Hotel) {
	h.ID = model.ID
	h.Name = model.Name
	h.Description = model.Description
	h.Address = model.Address
	h.Rating = model.Rating
	h.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (h *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	h.TotalData = totalData
	h.TotalPage = shared.CalculateTotalPage(totalData, limit)

	h.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		h.Hotels[i].FromModel(mod)
	}
}
