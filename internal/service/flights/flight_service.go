package flights

import (
	"context"
	"strings"
	"time"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/avelora/flightreserve/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Create(ctx context.Context, actor domain.Actor, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input FlightInput) (*domain.Flight, error)
	SaveSearchResults(ctx context.Context, actor domain.Actor, flights []FlightInput) (int, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

type FlightInput struct {
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Airline        string    `json:"airline"`
	AircraftType   string    `json:"aircraft_type"`
	Schedule       time.Time `json:"schedule"`
	Price          float64   `json:"price"`
	SeatCapacity   int       `json:"seat_capacity"`
	SeatsAvailable *int      `json:"seats_available,omitempty"`
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	return s.repo.GetByNumber(ctx, flightNumber)
}

func (s *FlightService) Create(ctx context.Context, actor domain.Actor, input FlightInput) (*domain.Flight, error) {
	if !actor.IsAdmin() {
		return nil, domain.Unauthorizedf("access denied: admins only")
	}
	flight, err := flightFromInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, actor domain.Actor, id int64, input FlightInput) (*domain.Flight, error) {
	if !actor.IsAdmin() {
		return nil, domain.Unauthorizedf("access denied: admins only")
	}
	flight, err := flightFromInput(input)
	if err != nil {
		return nil, err
	}
	flight.ID = id

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

// SaveSearchResults upserts externally searched flights by flight number.
func (s *FlightService) SaveSearchResults(ctx context.Context, actor domain.Actor, inputs []FlightInput) (int, error) {
	if !actor.IsAdmin() {
		return 0, domain.Unauthorizedf("access denied: admins only")
	}
	if len(inputs) == 0 {
		return 0, domain.Validationf("no flights provided to save")
	}

	flights := make([]domain.Flight, 0, len(inputs))
	for _, input := range inputs {
		if input.SeatCapacity == 0 {
			input.SeatCapacity = 100
		}
		flight, err := flightFromInput(input)
		if err != nil {
			return 0, err
		}
		flights = append(flights, *flight)
	}

	saved, err := s.repo.UpsertByNumber(ctx, flights)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return saved, nil
}

func flightFromInput(input FlightInput) (*domain.Flight, error) {
	if strings.TrimSpace(input.FlightNumber) == "" || input.Origin == "" || input.Destination == "" {
		return nil, domain.Validationf("flight number, origin and destination are required")
	}
	if input.SeatCapacity < 1 {
		return nil, domain.Validationf("seat capacity must be a positive number")
	}
	if input.Price < 0 {
		return nil, domain.Validationf("price must be a non-negative number")
	}

	// Seats available defaults to capacity when not provided.
	seatsAvailable := input.SeatCapacity
	if input.SeatsAvailable != nil {
		seatsAvailable = *input.SeatsAvailable
	}
	if seatsAvailable < 0 {
		return nil, domain.Validationf("seats available must be zero or a positive number")
	}
	if seatsAvailable > input.SeatCapacity {
		return nil, domain.Validationf("seats available cannot exceed seat capacity")
	}

	aircraft := input.AircraftType
	if aircraft == "" {
		aircraft = "Not specified"
	}

	return &domain.Flight{
		FlightNumber:   strings.ToUpper(strings.TrimSpace(input.FlightNumber)),
		Origin:         input.Origin,
		Destination:    input.Destination,
		Airline:        input.Airline,
		AircraftType:   aircraft,
		Schedule:       input.Schedule,
		Price:          input.Price,
		SeatCapacity:   input.SeatCapacity,
		SeatsAvailable: seatsAvailable,
	}, nil
}

var _ FlightUseCase = (*FlightService)(nil)
