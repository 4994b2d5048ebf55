package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/reservation/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
	ActiveForRoomTx(ctx context.Context, tx *sqlx.Tx, roomNumber int, excludeID string) ([]model.Reservation, error)
	ReconcileRoomTx(ctx context.Context, tx *sqlx.Tx, roomNumber int, today time.Time) error
	ReconcileAll(ctx context.Context, today time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// WithinTx runs fn inside a serializable transaction on the write
// connection. The read of existing reservations and the subsequent
// write for a booking must share this transaction so that two
// concurrent bookings of the same room cannot both commit.
func (repo *repositoryImpl) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.WithinTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(rollbackErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ActiveForRoomTx loads the non-cancelled reservations for a room,
// optionally excluding one reservation id (used when re-validating a
// date edit against everything but itself).
func (repo *repositoryImpl) ActiveForRoomTx(ctx context.Context, tx *sqlx.Tx, roomNumber int, excludeID string) (res []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ActiveForRoomTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomNumber,
			Value:    roomNumber,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    model.StatusCancelled,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	res, err = repo.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	})
	if err != nil {
		return res, fmt.Errorf("failed to get active reservations for room %d: %w", roomNumber, err)
	}

	return res, nil
}

// ReconcileRoomTx recomputes the room's cached availability flag from
// the active reservations covering today.
func (repo *repositoryImpl) ReconcileRoomTx(ctx context.Context, tx *sqlx.Tx, roomNumber int, today time.Time) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ReconcileRoomTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := reconcileQuery() + fmt.Sprintf(" WHERE %s.%s = :room_number", roomModel.TableName, roomModel.FieldNumber)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = tx.NamedExecContext(ctx, query, map[string]any{
		"room_number": roomNumber,
		"cancelled":   model.StatusCancelled,
		"today":       today.Format(constant.DayFormat),
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to reconcile room %d: %w", roomNumber, err)
	}

	return nil
}

// ReconcileAll recomputes the availability flag for every room in one
// bulk statement. Safe to run concurrently with bookings: it only
// rewrites the derived flag, never the reservations themselves.
func (repo *repositoryImpl) ReconcileAll(ctx context.Context, today time.Time) (rooms int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ReconcileAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := reconcileQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"cancelled": model.StatusCancelled,
		"today":     today.Format(constant.DayFormat),
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to reconcile rooms: %w", err)
	}

	rooms, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read reconcile row count: %w", err)
	}

	return rooms, nil
}

func reconcileQuery() string {
	return fmt.Sprintf(`UPDATE %s SET %s = NOT EXISTS (
		SELECT 1 FROM %s
		WHERE %s.%s = %s.%s
		AND %s.%s != :cancelled
		AND %s.%s <= :today
		AND %s.%s > :today
	)`,
		roomModel.TableName, roomModel.FieldAvailable,
		model.TableName,
		model.TableName, model.FieldRoomNumber, roomModel.TableName, roomModel.FieldNumber,
		model.TableName, model.FieldStatus,
		model.TableName, model.FieldCheckIn,
		model.TableName, model.FieldCheckOut,
	)
}

// IsSerializationFailure reports whether the error is a Postgres
// serialization failure or deadlock, the signals that a serializable
// check-then-act transaction lost the race and may be retried.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	code := string(pqErr.Code)

	return code == constant.PqErrorCodeSerializationFailure || code == constant.PqErrorCodeDeadlockDetected
}
