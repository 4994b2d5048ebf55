package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	resModel "lodge/internal/domains/reservation/model"
	"lodge/internal/domains/room/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
	"time"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	AvailableForHotel(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldNumber, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AvailableForHotel returns the hotel's rooms with no active reservation
// overlapping the half-open [checkIn, checkOut) range. Results are a
// pre-filter only: a booking re-checks conflicts inside its transaction.
func (repo *repositoryImpl) AvailableForHotel(ctx context.Context, hotelID string, checkIn, checkOut time.Time) (res []model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.AvailableForHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`SELECT %s.* FROM %s
		WHERE %s.%s = :hotel_id
		AND NOT EXISTS (
			SELECT 1 FROM %s
			WHERE %s.%s = %s.%s
			AND %s.%s != :cancelled
			AND %s.%s < :check_out
			AND %s.%s > :check_in
		)
		ORDER BY %s.%s ASC`,
		model.TableName, model.TableName,
		model.TableName, model.FieldHotelID,
		resModel.TableName,
		resModel.TableName, resModel.FieldRoomNumber, model.TableName, model.FieldNumber,
		resModel.TableName, resModel.FieldStatus,
		resModel.TableName, resModel.FieldCheckIn,
		resModel.TableName, resModel.FieldCheckOut,
		model.TableName, model.FieldNumber,
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"hotel_id":  hotelID,
		"cancelled": resModel.StatusCancelled,
		"check_in":  checkIn,
		"check_out": checkOut,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &res, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get available rooms: %w", err)
	}

	return res, nil
}
