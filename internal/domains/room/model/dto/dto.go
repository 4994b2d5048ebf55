package dto

import (
	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateRoomRequest struct {
	Number  int    `json:"number"   validate:"required,gte=1"`
	Type    string `json:"type"     validate:"required,max=100"`
	HotelID string `json:"hotel_id" validate:"required,uuid"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		Number:    c.Number,
		Type:      c.Type,
		HotelID:   c.HotelID,
		Available: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Type    string `db:"type"      json:"type"      validate:"omitempty,max=100"`
	HotelID string `db:"hotel_id"  json:"hotel_id"  validate:"omitempty,uuid"`
	// Available may be set directly only as a deliberate override;
	// reconciliation will recompute it on its next pass.
	Available *bool `db:"available" json:"available" validate:"omitempty"`
}

type RoomResponse struct {
	Number    int    `json:"number"`
	Type      string `json:"type"`
	HotelID   string `json:"hotel_id"`
	Available bool   `json:"available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.Number = model.Number
	r.Type = model.Type
	r.HotelID = model.HotelID
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
