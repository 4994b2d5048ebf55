package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	hotelMocks "lodge/internal/domains/hotel/mocks"
	resMocks "lodge/internal/domains/reservation/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

type serviceMocks struct {
	repo  *roomMocks.MockRoom
	hotel *hotelMocks.MockHotel
	res   *resMocks.MockReservation
	cache *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Room, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:  roomMocks.NewMockRoom(ctrl),
		hotel: hotelMocks.NewMockHotel(ctrl),
		res:   resMocks.NewMockReservation(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.hotel, m.res, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func operatorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyOperator, "test-operator")
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		Number:  101,
		Type:    "double",
		HotelID: "hotel-1",
	}

	tests := []struct {
		name      string
		setupMock func(m serviceMocks)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(m serviceMocks) {
				m.hotel.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown hotel",
			setupMock: func(m serviceMocks) {
				m.hotel.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantKind: failure.KindNotFound,
			wantErr:  true,
		},
		{
			name: "duplicate room number",
			setupMock: func(m serviceMocks) {
				m.hotel.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func(m serviceMocks) {
				m.hotel.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			err := svc.Create(operatorContext(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantKind != "" {
				assert.True(t, failure.IsKind(err, tt.wantKind))
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache miss falls back to the repository", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{Number: 101, Type: "double", Available: true}, nil)

		res, err := svc.Get(operatorContext(), 101)

		require.NoError(t, err)
		assert.Equal(t, 101, res.Number)
		assert.True(t, res.Available)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(operatorContext(), 404)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(operatorContext(), dto.UpdateRoomRequest{Type: "suite"}, 101)

		assert.NoError(t, err)
	})

	t.Run("moving a room to an unknown hotel", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.hotel.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(operatorContext(), dto.UpdateRoomRequest{HotelID: "missing"}, 101)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(operatorContext(), dto.UpdateRoomRequest{Type: "suite"}, 404)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.res.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(operatorContext(), 101)

		assert.NoError(t, err)
	})

	t.Run("room with active reservations cannot be deleted", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.res.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Delete(operatorContext(), 101)

		assert.True(t, failure.IsKind(err, failure.KindIntegrityViolation))
	})
}
