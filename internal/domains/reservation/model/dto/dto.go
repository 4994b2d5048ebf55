package dto

import (
	"lodge/internal/domains/reservation/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type BookReservationRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	RoomNumber int    `json:"room_number" validate:"required,gte=1"`
	CheckIn    string `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out"   validate:"required,datetime=2006-01-02"`
}

func (b *BookReservationRequest) ToModel(user string, stay model.DateRange) model.Reservation {
	return model.Reservation{
		ID:         uuid.NewString(),
		CustomerID: b.CustomerID,
		RoomNumber: b.RoomNumber,
		CheckIn:    stay.CheckIn,
		CheckOut:   stay.CheckOut,
		Status:     model.StatusBooked,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ModifyReservationDatesRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type SearchAvailableRoomsRequest struct {
	HotelID  string `json:"hotel_id"  validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"omitempty,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
}

type ReservationResponse struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name,omitempty"`
	RoomNumber   int    `json:"room_number"`
	RoomType     string `json:"room_type,omitempty"`
	HotelName    string `json:"hotel_name,omitempty"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Nights       int    `json:"nights"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.CustomerName = model.CustomerName
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.HotelName = model.HotelName
	r.CheckIn = model.CheckIn.Format(constant.DayFormat)
	r.CheckOut = model.CheckOut.Format(constant.DayFormat)
	r.Nights = model.Range().Nights()
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (g *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		g.Reservations[i].FromModel(mod)
	}
}

type ReconcileResponse struct {
	Rooms int64 `json:"rooms"`
}

const (
	EventTypeBooked    = "reservation.booked"
	EventTypeModified  = "reservation.modified"
	EventTypeCancelled = "reservation.cancelled"
	EventTypeArrived   = "reservation.arrived"
)

// ReservationEvent is the payload published to Kafka after a lifecycle
// mutation commits.
type ReservationEvent struct {
	EventType     string `json:"event_type"`
	ReservationID string `json:"reservation_id"`
	CustomerID    string `json:"customer_id"`
	RoomNumber    int    `json:"room_number"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}

func NewReservationEvent(eventType string, res model.Reservation) ReservationEvent {
	return ReservationEvent{
		EventType:     eventType,
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		RoomNumber:    res.RoomNumber,
		CheckIn:       res.CheckIn.Format(constant.DayFormat),
		CheckOut:      res.CheckOut.Format(constant.DayFormat),
		Status:        res.Status,
		OccurredAt:    timezone.Now().Format(constant.DateFormat),
	}
}
