package service

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	customerModel "lodge/internal/domains/customer/model"
	customerRepo "lodge/internal/domains/customer/repository"
	hotelModel "lodge/internal/domains/hotel/model"
	hotelRepo "lodge/internal/domains/hotel/repository"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/repository"
	roomModel "lodge/internal/domains/room/model"
	roomDto "lodge/internal/domains/room/model/dto"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
	cacheGetRoom           = "room:get"
	cacheGetAllRoom        = "room:gets"
	cacheCountRoom         = "room:count"
)

type Reservation interface {
	Book(ctx context.Context, req dto.BookReservationRequest) (dto.ReservationResponse, error)
	ModifyDates(ctx context.Context, req dto.ModifyReservationDatesRequest, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) error
	MarkArrived(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	SearchAvailableRooms(ctx context.Context, req dto.SearchAvailableRoomsRequest) (roomDto.GetRoomsResponse, error)
	ReconcileAll(ctx context.Context) (dto.ReconcileResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	hotelRepo    hotelRepo.Hotel
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	hotelRepo hotelRepo.Hotel,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		hotelRepo:    hotelRepo,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafka,
		otel:         otel,
	}
}

// Book creates a BOOKED reservation for the half-open [check_in,
// check_out) range. The conflict check and the insert share one
// serializable transaction; a serialization failure is retried once
// before the booking is rejected as unavailable.
func (s *serviceImpl) Book(ctx context.Context, req dto.BookReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyOperator).(string)

	stay, err := model.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	customerExist, err := s.customerRepo.Exist(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check customer existence")

		return res, fmt.Errorf("failed to check customer existence: %w", err)
	}

	if !customerExist {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	roomExist, err := s.roomRepo.Exist(ctx, filterByRoomNumber(req.RoomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if !roomExist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	var created model.Reservation

	attempt := func(ctx context.Context) error {
		return s.repo.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			active, err := s.repo.ActiveForRoomTx(ctx, tx, req.RoomNumber, constant.Empty)
			if err != nil {
				return err
			}

			if conflictID, conflict := findConflict(active, stay); conflict {
				return failure.RoomUnavailable(req.RoomNumber, conflictID) // nolint:wrapcheck
			}

			created = req.ToModel(user, stay)

			if err := s.repo.InsertTx(ctx, tx, created); err != nil {
				return fmt.Errorf("failed to insert reservation: %w", err)
			}

			return s.repo.ReconcileRoomTx(ctx, tx, req.RoomNumber, timezone.Today())
		})
	}

	err = attempt(ctx)
	if repository.IsSerializationFailure(err) {
		log.Warn().Int("roomNumber", req.RoomNumber).Msg("booking lost a serialization race, retrying once")

		err = attempt(ctx)
		if repository.IsSerializationFailure(err) {
			err = failure.RoomUnavailable(req.RoomNumber, constant.Empty) // nolint:wrapcheck
		}
	}

	if err != nil {
		return res, err
	}

	s.publishEvent(ctx, dto.EventTypeBooked, created)
	s.invalidateCaches(ctx, created.ID)

	res.FromModel(created)

	return res, nil
}

// ModifyDates moves a BOOKED reservation to a new stay range,
// re-validating conflicts against every other active reservation for
// the room. Cancelled reservations cannot be modified.
func (s *serviceImpl) ModifyDates(ctx context.Context, req dto.ModifyReservationDatesRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ModifyDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyOperator).(string)

	stay, err := model.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	var (
		updated    model.Reservation
		roomNumber int
	)

	attempt := func(ctx context.Context) error {
		return s.repo.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			current, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
			if err != nil {
				return fmt.Errorf("failed to get reservation: %w", err)
			}

			if current.ID == constant.Empty {
				return failure.NotFound("reservation not found") // nolint:wrapcheck
			}

			roomNumber = current.RoomNumber

			if current.Status == model.StatusCancelled {
				return failure.InvalidTransitionFromString("cannot modify a cancelled reservation") // nolint:wrapcheck
			}

			active, err := s.repo.ActiveForRoomTx(ctx, tx, current.RoomNumber, current.ID)
			if err != nil {
				return err
			}

			if conflictID, conflict := findConflict(active, stay); conflict {
				return failure.RoomUnavailable(current.RoomNumber, conflictID) // nolint:wrapcheck
			}

			err = s.repo.UpdateTx(ctx, tx, map[string]any{
				model.FieldCheckIn:       stay.CheckIn,
				model.FieldCheckOut:      stay.CheckOut,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			}, shared.FilterByID(id, model.FieldID, model.TableName))
			if err != nil {
				return fmt.Errorf("failed to update reservation dates: %w", err)
			}

			updated = current
			updated.CheckIn = stay.CheckIn
			updated.CheckOut = stay.CheckOut

			return s.repo.ReconcileRoomTx(ctx, tx, current.RoomNumber, timezone.Today())
		})
	}

	err = attempt(ctx)
	if repository.IsSerializationFailure(err) {
		log.Warn().Str("id", id).Msg("date modification lost a serialization race, retrying once")

		err = attempt(ctx)
		if repository.IsSerializationFailure(err) {
			err = failure.RoomUnavailable(roomNumber, constant.Empty) // nolint:wrapcheck
		}
	}

	if err != nil {
		return res, err
	}

	s.publishEvent(ctx, dto.EventTypeModified, updated)
	s.invalidateCaches(ctx, id)

	res.FromModel(updated)

	return res, nil
}

// Cancel moves a reservation to CANCELLED. Cancelling an already
// cancelled reservation is a no-op; an ARRIVED reservation cannot be
// cancelled.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyOperator).(string)

	var cancelled model.Reservation

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get reservation: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		if current.Status == model.StatusCancelled {
			log.Info().Str("id", id).Msg("reservation already cancelled")

			return nil
		}

		if err := model.Transition(current.Status, model.StatusCancelled); err != nil {
			return err
		}

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}

		cancelled = current
		cancelled.Status = model.StatusCancelled

		return s.repo.ReconcileRoomTx(ctx, tx, current.RoomNumber, timezone.Today())
	})
	if err != nil {
		return err
	}

	if cancelled.ID != constant.Empty {
		s.publishEvent(ctx, dto.EventTypeCancelled, cancelled)
		s.invalidateCaches(ctx, id)
	}

	return nil
}

// MarkArrived moves a BOOKED reservation to ARRIVED. Arrival is only
// accepted while today falls inside the stay range.
func (s *serviceImpl) MarkArrived(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkArrived")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyOperator).(string)

	var arrived model.Reservation

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get reservation: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		if err := model.Transition(current.Status, model.StatusArrived); err != nil {
			return err
		}

		if !current.Range().Contains(timezone.Today()) {
			return failure.InvalidTransitionFromString("cannot mark arrival outside the stay range") // nolint:wrapcheck
		}

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:        model.StatusArrived,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to mark reservation arrived: %w", err)
		}

		arrived = current
		arrived.Status = model.StatusArrived

		return s.repo.ReconcileRoomTx(ctx, tx, current.RoomNumber, timezone.Today())
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, dto.EventTypeArrived, arrived)
	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

// SearchAvailableRooms lists the hotel's rooms free for the requested
// range. Without a range it lists every room of the hotel; a partial
// range is rejected.
func (s *serviceImpl) SearchAvailableRooms(ctx context.Context, req dto.SearchAvailableRoomsRequest) (res roomDto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchAvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotelExist, err := s.hotelRepo.Exist(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check hotel existence")

		return res, fmt.Errorf("failed to check hotel existence: %w", err)
	}

	if !hotelExist {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	if req.CheckIn == constant.Empty && req.CheckOut == constant.Empty {
		rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(req.HotelID, roomModel.FieldHotelID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get rooms")

			return res, fmt.Errorf("failed to get rooms: %w", err)
		}

		res.FromModels(rooms, len(rooms), 0)

		return res, nil
	}

	if req.CheckIn == constant.Empty || req.CheckOut == constant.Empty {
		return res, failure.InvalidRange("check_in and check_out must be provided together") // nolint:wrapcheck
	}

	stay, err := model.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	rooms, err := s.roomRepo.AvailableForHotel(ctx, req.HotelID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to search available rooms")

		return res, fmt.Errorf("failed to search available rooms: %w", err)
	}

	res.FromModels(rooms, len(rooms), 0)

	return res, nil
}

// ReconcileAll recomputes every room's availability flag against
// today's active reservations.
func (s *serviceImpl) ReconcileAll(ctx context.Context) (res dto.ReconcileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcileAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, err := s.repo.ReconcileAll(ctx, timezone.Today())
	if err != nil {
		log.Error().Err(err).Msg("failed to reconcile rooms")

		return res, fmt.Errorf("failed to reconcile rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetRoom)
		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	res.Rooms = rooms

	return res, nil
}

// findConflict reports the first active reservation whose stay overlaps
// the requested range. Ranges are half-open, so back-to-back stays
// sharing a boundary day never conflict.
func findConflict(active []model.Reservation, stay model.DateRange) (string, bool) {
	for _, reservation := range active {
		if reservation.Range().Overlaps(stay) {
			return reservation.ID, true
		}
	}

	return constant.Empty, false
}

func filterByRoomNumber(number int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldNumber,
				Value:    number,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, reservation model.Reservation) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.NewReservationEvent(eventType, reservation)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.ReservationEvents, kafka.Message{
			Key:   reservation.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("eventType", eventType).Msg("failed to publish reservation event")
		}
	}()
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheGetRoom)
		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
