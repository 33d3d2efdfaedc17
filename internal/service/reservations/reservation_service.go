package reservations

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/avelora/flightreserve/internal/fare"
	"github.com/avelora/flightreserve/internal/kafka"
	"github.com/avelora/flightreserve/internal/pnr"
	"github.com/avelora/flightreserve/internal/repository"
)

type ReservationUseCase interface {
	Create(ctx context.Context, actor domain.Actor, input CreateInput) (*domain.Reservation, error)
	Amend(ctx context.Context, actor domain.Actor, id int64, input AmendInput) (*domain.Reservation, float64, error)
	Cancel(ctx context.Context, actor domain.Actor, id int64) error
	CheckIn(ctx context.Context, input CheckInInput) (*domain.Reservation, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Reservation, error)
	ListForUser(ctx context.Context, actor domain.Actor, userID int64) ([]domain.Reservation, error)
	OccupiedSeats(ctx context.Context, flightID int64) ([]string, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seatCode string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seatCode string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReservationService struct {
	reservations       repository.ReservationRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	ids                *pnr.Generator
	eventsTopic        string
	notificationsTopic string
	seatLockTTL        time.Duration
}

type MealSelection struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type CreateInput struct {
	FlightID  int64          `json:"flight_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Passport  string         `json:"passport"`
	SeatCode  string         `json:"seat"`
	Meal      *MealSelection `json:"meal_option,omitempty"`
	Baggage   string         `json:"baggage,omitempty"`
}

// AmendInput fields are independently optional; nil means leave unchanged.
type AmendInput struct {
	SeatCode *string        `json:"seat,omitempty"`
	Meal     *MealSelection `json:"meal_option,omitempty"`
	Baggage  *string        `json:"baggage,omitempty"`
}

type CheckInInput struct {
	PNR      string `json:"pnr"`
	LastName string `json:"last_name"`
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

func WithSeatLockTTL(ttl time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		s.seatLockTTL = ttl
	}
}

func NewReservationService(
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	ids *pnr.Generator,
	eventsTopic string,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		reservations: reservations,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		ids:          ids,
		eventsTopic:  eventsTopic,
		seatLockTTL:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *ReservationService) Create(ctx context.Context, actor domain.Actor, input CreateInput) (*domain.Reservation, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Passport == "" || input.SeatCode == "" || input.FlightID == 0 {
		return nil, domain.Validationf("missing required fields")
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	seatCode := strings.TrimSpace(input.SeatCode)

	// Advisory hold on the seat while the insert is in flight. The partial
	// unique index decides the race either way.
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, flight.ID, seatCode, s.seatLockTTL)
		if err == nil && !ok {
			return nil, domain.Conflictf("seat %s is already booked, please choose another", seatCode)
		}
		if err != nil {
			log.Printf("WARNING: seat lock unavailable: %v", err)
		} else {
			defer func() {
				_ = s.cache.ReleaseSeatLock(ctx, flight.ID, seatCode)
			}()
		}
	}

	taken, err := s.reservations.SeatTaken(ctx, flight.ID, seatCode, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflictf("seat %s is already booked, please choose another", seatCode)
	}

	code, err := s.ids.PNR(ctx, s.reservations.PNRExists)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		FlightID:  flight.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     strings.ToLower(input.Email),
		Passport:  input.Passport,
		Seat:      domain.Seat{Code: seatCode, Premium: fare.IsPremiumSeat(seatCode)},
		Meal:      mealFromSelection(input.Meal),
		BaggageKg: fare.ParseBaggageKg(input.Baggage),
		Status:    domain.ReservationStatusBooked,
		PNR:       code,
	}
	if !actor.Anonymous() {
		userID := actor.UserID
		reservation.UserID = &userID
	}
	reservation.Bill = s.computeBill(reservation, flight.Price)

	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation_booked", reservation, flight.FlightNumber, 0)
	return reservation, nil
}

func (s *ReservationService) Amend(ctx context.Context, actor domain.Actor, id int64, input AmendInput) (*domain.Reservation, float64, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if err := authorize(actor, reservation); err != nil {
		return nil, 0, err
	}
	if !reservation.Active() {
		return nil, 0, domain.Conflictf("reservation is cancelled")
	}

	if input.SeatCode != nil {
		newSeat := strings.TrimSpace(*input.SeatCode)
		if newSeat != "" && newSeat != reservation.Seat.Code {
			taken, err := s.reservations.SeatTaken(ctx, reservation.FlightID, newSeat, reservation.ID)
			if err != nil {
				return nil, 0, err
			}
			if taken {
				return nil, 0, domain.Conflictf("seat %s is already booked, please choose another", newSeat)
			}
			reservation.Seat = domain.Seat{Code: newSeat, Premium: fare.IsPremiumSeat(newSeat)}
		}
	}

	oldTotal := reservation.Bill.Total

	if input.Meal != nil {
		reservation.Meal = mealFromSelection(input.Meal)
	}
	if input.Baggage != nil {
		reservation.BaggageKg = fare.ParseBaggageKg(*input.Baggage)
	}

	// Base fare stays as booked; amendments never reprice against the flight.
	reservation.Bill = s.computeBill(reservation, reservation.Bill.BaseFare)

	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, 0, err
	}

	amountDue := reservation.Bill.Total - oldTotal
	if amountDue < 0 {
		amountDue = 0
	}

	s.publish(ctx, "reservation_amended", reservation, "", amountDue)
	return reservation, amountDue, nil
}

func (s *ReservationService) Cancel(ctx context.Context, actor domain.Actor, id int64) error {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, reservation); err != nil {
		return err
	}
	if !reservation.Active() {
		return nil
	}

	if err := s.reservations.Cancel(ctx, reservation.ID); err != nil {
		return err
	}
	reservation.Status = domain.ReservationStatusCancelled

	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, reservation.FlightID, reservation.Seat.Code)
	}
	s.publish(ctx, "reservation_cancelled", reservation, "", 0)
	return nil
}

func (s *ReservationService) CheckIn(ctx context.Context, input CheckInInput) (*domain.Reservation, error) {
	code := strings.ToUpper(strings.TrimSpace(input.PNR))
	lastName := strings.TrimSpace(input.LastName)
	if code == "" || lastName == "" {
		return nil, domain.Validationf("PNR and last name are required")
	}

	reservation, err := s.reservations.GetByPNR(ctx, code)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(reservation.LastName, lastName) {
		return nil, domain.Unauthorizedf("last name does not match the reservation")
	}
	if !reservation.Active() {
		return nil, domain.Conflictf("reservation is cancelled")
	}
	if reservation.CheckedIn {
		// The caller still gets the reservation so the existing boarding
		// pass can be shown again.
		return reservation, domain.AlreadyDonef("passenger is already checked in")
	}

	flight, err := s.flights.GetByID(ctx, reservation.FlightID)
	if err != nil {
		return nil, err
	}

	boardingPass, err := s.ids.BoardingPass(ctx, flight.FlightNumber, s.reservations.BoardingPassExists)
	if err != nil {
		return nil, err
	}

	reservation.CheckedIn = true
	reservation.BoardingPassNo = &boardingPass
	reservation.Bill = s.computeBill(reservation, reservation.Bill.BaseFare)

	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation_checked_in", reservation, flight.FlightNumber, 0)
	return reservation, nil
}

func (s *ReservationService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) ListForUser(ctx context.Context, actor domain.Actor, userID int64) ([]domain.Reservation, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, domain.Unauthorizedf("access unauthorized")
	}
	return s.reservations.ListByUser(ctx, userID)
}

func (s *ReservationService) OccupiedSeats(ctx context.Context, flightID int64) ([]string, error) {
	return s.reservations.OccupiedSeats(ctx, flightID)
}

// computeBill derives the bill from the fields currently on the record. It
// runs immediately before every persist.
func (s *ReservationService) computeBill(r *domain.Reservation, baseFare float64) domain.Bill {
	return fare.Compute(fare.Inputs{
		BaseFare:    baseFare,
		PremiumSeat: r.Seat.Premium,
		MealPrice:   r.Meal.Price,
		BaggageKg:   r.BaggageKg,
	})
}

func authorize(actor domain.Actor, reservation *domain.Reservation) error {
	if actor.IsAdmin() {
		return nil
	}
	if reservation.UserID != nil && !actor.Anonymous() && *reservation.UserID == actor.UserID {
		return nil
	}
	if reservation.UserID == nil {
		// Reservations booked without an account stay amendable by anyone
		// holding the id, matching the public booking flow.
		return nil
	}
	return domain.Unauthorizedf("access unauthorized")
}

func mealFromSelection(sel *MealSelection) domain.Meal {
	meal := domain.Meal{Label: "None", Price: 0}
	if sel == nil {
		return meal
	}
	if sel.Label != "" {
		meal.Label = sel.Label
	}
	if sel.Price > 0 {
		meal.Price = sel.Price
	}
	return meal
}

func (s *ReservationService) publish(ctx context.Context, eventType string, r *domain.Reservation, flightNumber string, amountDue float64) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:         eventType,
		PNR:          r.PNR,
		FlightID:     r.FlightID,
		FlightNumber: flightNumber,
		SeatCode:     r.Seat.Code,
		Email:        r.Email,
		Status:       string(r.Status),
		Total:        r.Bill.Total,
		AmountDue:    amountDue,
	}
	if r.BoardingPassNo != nil {
		event.BoardingPass = *r.BoardingPassNo
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, r.PNR, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for PNR %s: %v", eventType, r.PNR, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, r.PNR, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for PNR %s: %v", eventType, r.PNR, err)
		}
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
