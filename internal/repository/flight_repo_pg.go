package repository

import (
	"context"
	"errors"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	UpsertByNumber(ctx context.Context, flights []domain.Flight) (int, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, origin, destination, airline, aircraft_type, schedule, price, seat_capacity, seats_available, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.Airline, &f.AircraftType, &f.Schedule, &f.Price, &f.SeatCapacity, &f.SeatsAvailable, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY schedule`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("flight not found")
	}
	return f, err
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("flight not found")
	}
	return f, err
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, origin, destination, airline, aircraft_type, schedule, price, seat_capacity, seats_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Origin, flight.Destination, flight.Airline, flight.AircraftType, flight.Schedule, flight.Price, flight.SeatCapacity, flight.SeatsAvailable).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	return translateUnique(err)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights SET flight_number=$1, origin=$2, destination=$3, airline=$4, aircraft_type=$5, schedule=$6, price=$7, seat_capacity=$8, seats_available=$9, updated_at=now()
		WHERE id=$10 RETURNING updated_at`,
		flight.FlightNumber, flight.Origin, flight.Destination, flight.Airline, flight.AircraftType, flight.Schedule, flight.Price, flight.SeatCapacity, flight.SeatsAvailable, flight.ID)
	if err := row.Scan(&flight.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundf("flight not found")
		}
		return translateUnique(err)
	}
	return nil
}

// UpsertByNumber saves external search results, updating rows that already
// exist for a flight number. Returns the number of rows written.
func (r *PGFlightRepository) UpsertByNumber(ctx context.Context, flights []domain.Flight) (int, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	saved := 0
	for _, f := range flights {
		_, err := tx.Exec(ctx, `INSERT INTO flights (flight_number, origin, destination, airline, aircraft_type, schedule, price, seat_capacity, seats_available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			ON CONFLICT (flight_number) DO UPDATE SET
				origin=EXCLUDED.origin, destination=EXCLUDED.destination, airline=EXCLUDED.airline,
				aircraft_type=EXCLUDED.aircraft_type, schedule=EXCLUDED.schedule, price=EXCLUDED.price, updated_at=now()`,
			f.FlightNumber, f.Origin, f.Destination, f.Airline, f.AircraftType, f.Schedule, f.Price, f.SeatCapacity)
		if err != nil {
			return 0, err
		}
		saved++
	}
	return saved, tx.Commit(ctx)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
