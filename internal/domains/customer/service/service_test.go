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
	customerMocks "lodge/internal/domains/customer/mocks"
	"lodge/internal/domains/customer/model"
	"lodge/internal/domains/customer/model/dto"
	"lodge/internal/domains/customer/service"
	resMocks "lodge/internal/domains/reservation/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

func newService(t *testing.T) (service.Customer, *customerMocks.MockCustomer, *resMocks.MockReservation, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockResRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockResRepo, mockCache
}

func operatorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyOperator, "test-operator")
}

func TestCustomerService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateCustomerRequest
		setupMock func(repo *customerMocks.MockCustomer)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateCustomerRequest{
				Name:        "Ada Reyes",
				Email:       "ada.reyes@example.com",
				DateOfBirth: "1991-04-23",
			},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateCustomerRequest{
				Name:  "Ada Reyes",
				Email: "ada.reyes@example.com",
			},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, _ := newService(t)
			tt.setupMock(mockRepo)

			err := svc.Create(operatorContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomerService_Get(t *testing.T) {
	t.Run("cache miss falls back to the repository", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Customer{ID: "customer-1", Name: "Ada Reyes"}, nil)

		res, err := svc.Get(operatorContext(), "customer-1")

		require.NoError(t, err)
		assert.Equal(t, "Ada Reyes", res.Name)
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)

		_, err := svc.Get(operatorContext(), "missing")

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		svc, mockRepo, mockResRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockResRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(operatorContext(), "customer-1")

		assert.NoError(t, err)
	})

	t.Run("customer with active reservations cannot be deleted", func(t *testing.T) {
		svc, mockRepo, mockResRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockResRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Delete(operatorContext(), "customer-1")

		assert.True(t, failure.IsKind(err, failure.KindIntegrityViolation))
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(operatorContext(), "missing")

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}
