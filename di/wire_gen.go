// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	repository4 "lodge/internal/domains/customer/repository"
	service3 "lodge/internal/domains/customer/service"
	"lodge/internal/domains/hotel/repository"
	"lodge/internal/domains/hotel/service"
	repository3 "lodge/internal/domains/reservation/repository"
	service4 "lodge/internal/domains/reservation/service"
	repository2 "lodge/internal/domains/room/repository"
	service2 "lodge/internal/domains/room/service"
	"lodge/internal/handlers/customer"
	"lodge/internal/handlers/hotel"
	"lodge/internal/handlers/reservation"
	"lodge/internal/handlers/room"
	"lodge/internal/scheduler"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"
)

// Injectors from wire.go:

func InitializeApp() *App {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryHotel := repository.New(connection, otelOtel)
	repositoryRoom := repository2.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceHotel := service.New(repositoryHotel, repositoryRoom, configConfig, redisCache, otelOtel)
	handler := hotel.New(serviceHotel, otelOtel)
	repositoryReservation := repository3.New(connection, otelOtel)
	serviceRoom := service2.New(repositoryRoom, repositoryHotel, repositoryReservation, configConfig, redisCache, otelOtel)
	roomHandler := room.New(serviceRoom, otelOtel)
	repositoryCustomer := repository4.New(connection, otelOtel)
	serviceCustomer := service3.New(repositoryCustomer, repositoryReservation, configConfig, redisCache, otelOtel)
	customerHandler := customer.New(serviceCustomer, otelOtel)
	kafkaClient := kafka.New(configConfig)
	serviceReservation := service4.New(repositoryReservation, repositoryRoom, repositoryCustomer, repositoryHotel, configConfig, redisCache, kafkaClient, otelOtel)
	reservationHandler := reservation.New(serviceReservation, otelOtel)
	domainHandlers := router.DomainHandlers{
		Hotel:       handler,
		Room:        roomHandler,
		Customer:    customerHandler,
		Reservation: reservationHandler,
	}
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	routerRouter := router.New(domainHandlers, appMiddleware)
	httpHTTP := http.New(configConfig, routerRouter)
	reconciler := scheduler.NewReconciler(serviceReservation, configConfig)
	app := &App{
		HTTP:       httpHTTP,
		Reconciler: reconciler,
	}
	return app
}

// wire.go:

// App bundles the long-running pieces of the service: the HTTP server
// and the availability reconciliation ticker.
type App struct {
	HTTP       *http.HTTP
	Reconciler *scheduler.Reconciler
}

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, kafka.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var hotelDomain = wire.NewSet(repository.New, service.New)

var roomDomain = wire.NewSet(repository2.New, service2.New)

var customerDomain = wire.NewSet(repository4.New, service3.New)

var reservationDomain = wire.NewSet(repository3.New, service4.New)

var domains = wire.NewSet(
	hotelDomain,
	roomDomain,
	customerDomain,
	reservationDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), hotel.New, room.New, customer.New, reservation.New, router.New)
