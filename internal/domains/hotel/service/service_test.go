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
	"lodge/internal/domains/hotel/model"
	"lodge/internal/domains/hotel/model/dto"
	"lodge/internal/domains/hotel/service"
	roomMocks "lodge/internal/domains/room/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

func newService(t *testing.T) (service.Hotel, *hotelMocks.MockHotel, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockRoomRepo, mockCache
}

func operatorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyOperator, "test-operator")
}

func TestHotelService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *hotelMocks.MockHotel)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(repo *hotelMocks.MockHotel) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			setupMock: func(repo *hotelMocks.MockHotel) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, _ := newService(t)
			tt.setupMock(mockRepo)

			err := svc.Create(operatorContext(), dto.CreateHotelRequest{
				Name:    "Harbor View",
				Address: "12 Quay Street",
				Rating:  4,
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHotelService_Get(t *testing.T) {
	t.Run("cache miss falls back to the repository", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{ID: "hotel-1", Name: "Harbor View", Rating: 4}, nil)

		res, err := svc.Get(operatorContext(), "hotel-1")

		require.NoError(t, err)
		assert.Equal(t, "Harbor View", res.Name)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)

		_, err := svc.Get(operatorContext(), "missing")

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestHotelService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Hotel{{ID: "hotel-1", Name: "Harbor View"}}, nil)

	res, err := svc.GetAll(operatorContext(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Hotels, 1)
	assert.Equal(t, "Harbor View", res.Hotels[0].Name)
}

func TestHotelService_Update(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(operatorContext(), dto.UpdateHotelRequest{Name: "Harbor View West"}, "hotel-1")

		assert.NoError(t, err)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(operatorContext(), dto.UpdateHotelRequest{Name: "Harbor View West"}, "missing")

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestHotelService_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		svc, mockRepo, mockRoomRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRoomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(operatorContext(), "hotel-1")

		assert.NoError(t, err)
	})

	t.Run("hotel with rooms cannot be deleted", func(t *testing.T) {
		svc, mockRepo, mockRoomRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRoomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Delete(operatorContext(), "hotel-1")

		assert.True(t, failure.IsKind(err, failure.KindIntegrityViolation))
	})

	t.Run("unknown hotel", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(operatorContext(), "missing")

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}
