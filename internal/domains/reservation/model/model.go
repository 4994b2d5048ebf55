package model

import (
	customerModel "lodge/internal/domains/customer/model"
	hotelModel "lodge/internal/domains/hotel/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldCustomerID = "customer_id"
	FieldRoomNumber = "room_number"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldStatus     = "status"
)

type Reservation struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	RoomNumber int       `db:"room_number"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Status     string    `db:"status"`

	CustomerName string `db:"customer_name" table:"customers" column:"name"`
	RoomType     string `db:"room_type"     table:"rooms"     column:"type"`
	HotelName    string `db:"hotel_name"    table:"hotels"    column:"name"`

	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "LEFT JOIN " + customerModel.TableName + " ON " + customerModel.TableName + "." + customerModel.FieldID + " = " + TableName + "." + FieldCustomerID +
		" LEFT JOIN " + roomModel.TableName + " ON " + roomModel.TableName + "." + roomModel.FieldNumber + " = " + TableName + "." + FieldRoomNumber +
		" LEFT JOIN " + hotelModel.TableName + " ON " + hotelModel.TableName + "." + hotelModel.FieldID + " = " + roomModel.TableName + "." + roomModel.FieldHotelID
}

func (r Reservation) Range() DateRange {
	return DateRange{CheckIn: truncateToDay(r.CheckIn), CheckOut: truncateToDay(r.CheckOut)}
}

func (r Reservation) Active() bool {
	return r.Status != StatusCancelled
}
