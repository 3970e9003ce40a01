package service

import (
	postgres "github.com/aroya-air/seatwise/internal/repository/postgres"
	redis "github.com/aroya-air/seatwise/internal/repository/redis"
	"github.com/aroya-air/seatwise/internal/service/flights"
	"github.com/aroya-air/seatwise/internal/service/reservation"
)

type Services struct {
	Flights     *flights.Service
	Reservation *reservation.Service
}

type Config struct {
	Flights     flights.Config
	Reservation reservation.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.ReservationsPubSub,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Flights:     flights.New(store, cache, cfg.Flights),
		Reservation: reservation.New(store, cache, pubsub, limiter, cfg.Reservation),
	}
}
