package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelora/flightreserve/config"
	"github.com/avelora/flightreserve/internal/bootstrap"
	"github.com/avelora/flightreserve/internal/cache"
	"github.com/avelora/flightreserve/internal/kafka"
	"github.com/avelora/flightreserve/internal/pnr"
	"github.com/avelora/flightreserve/internal/repository"
	"github.com/avelora/flightreserve/internal/service/flights"
	"github.com/avelora/flightreserve/internal/service/reservations"
	"github.com/avelora/flightreserve/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Reservation.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	userService := users.NewUserService(userRepo)
	reservationService := reservations.NewReservationService(
		reservationRepo,
		flightRepo,
		redisCache,
		producer,
		pnr.NewGenerator(cfg.Reservation.IDRetryLimit),
		cfg.Kafka.ReservationsTopic,
		reservations.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		reservations.WithSeatLockTTL(time.Duration(cfg.Reservation.SeatLockTTL)*time.Second),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, reservationService, userService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
