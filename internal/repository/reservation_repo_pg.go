package repository

import (
	"context"
	"errors"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByPNR(ctx context.Context, pnr string) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	Cancel(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	SeatTaken(ctx context.Context, flightID int64, seatCode string, excludeID int64) (bool, error)
	OccupiedSeats(ctx context.Context, flightID int64) ([]string, error)
	PNRExists(ctx context.Context, code string) (bool, error)
	BoardingPassExists(ctx context.Context, code string) (bool, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

const reservationColumns = `id, flight_id, user_id, first_name, last_name, email, passport,
	seat_code, seat_premium, meal_label, meal_price, baggage_kg,
	base_fare, seat_fee, meal_fee, baggage_fee, subtotal, tax, total,
	status, pnr, checked_in, boarding_pass_no, created_at, updated_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var r domain.Reservation
	if err := row.Scan(&r.ID, &r.FlightID, &r.UserID, &r.FirstName, &r.LastName, &r.Email, &r.Passport,
		&r.Seat.Code, &r.Seat.Premium, &r.Meal.Label, &r.Meal.Price, &r.BaggageKg,
		&r.Bill.BaseFare, &r.Bill.SeatFee, &r.Bill.MealFee, &r.Bill.BaggageFee, &r.Bill.Subtotal, &r.Bill.Tax, &r.Bill.Total,
		&r.Status, &r.PNR, &r.CheckedIn, &r.BoardingPassNo, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts the reservation and claims a seat counter in one
// transaction. The uniq_active_seat index rejects a concurrent booking of the
// same seat even when both requests passed the pre-check.
func (r *PGReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available - 1, updated_at = now() WHERE id=$1 AND seats_available > 0`, reservation.FlightID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.Conflictf("no seats available on this flight")
	}

	err = tx.QueryRow(ctx, `INSERT INTO reservations (flight_id, user_id, first_name, last_name, email, passport,
			seat_code, seat_premium, meal_label, meal_price, baggage_kg,
			base_fare, seat_fee, meal_fee, baggage_fee, subtotal, tax, total, status, pnr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at`,
		reservation.FlightID, reservation.UserID, reservation.FirstName, reservation.LastName, reservation.Email, reservation.Passport,
		reservation.Seat.Code, reservation.Seat.Premium, reservation.Meal.Label, reservation.Meal.Price, reservation.BaggageKg,
		reservation.Bill.BaseFare, reservation.Bill.SeatFee, reservation.Bill.MealFee, reservation.Bill.BaggageFee,
		reservation.Bill.Subtotal, reservation.Bill.Tax, reservation.Bill.Total,
		reservation.Status, reservation.PNR).
		Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		return translateUnique(err)
	}

	return tx.Commit(ctx)
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("reservation not found")
	}
	return res, err
}

func (r *PGReservationRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE pnr=$1`, pnr))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("invalid PNR")
	}
	return res, err
}

func (r *PGReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	row := r.db.QueryRow(ctx, `UPDATE reservations SET
			seat_code=$1, seat_premium=$2, meal_label=$3, meal_price=$4, baggage_kg=$5,
			base_fare=$6, seat_fee=$7, meal_fee=$8, baggage_fee=$9, subtotal=$10, tax=$11, total=$12,
			status=$13, checked_in=$14, boarding_pass_no=$15, updated_at=now()
		WHERE id=$16 RETURNING updated_at`,
		reservation.Seat.Code, reservation.Seat.Premium, reservation.Meal.Label, reservation.Meal.Price, reservation.BaggageKg,
		reservation.Bill.BaseFare, reservation.Bill.SeatFee, reservation.Bill.MealFee, reservation.Bill.BaggageFee,
		reservation.Bill.Subtotal, reservation.Bill.Tax, reservation.Bill.Total,
		reservation.Status, reservation.CheckedIn, reservation.BoardingPassNo, reservation.ID)
	if err := row.Scan(&reservation.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundf("reservation not found")
		}
		return translateUnique(err)
	}
	return nil
}

// Cancel marks the reservation cancelled and returns its seat counter. The
// row is kept; cancellation is a soft state, not removal.
func (r *PGReservationRepository) Cancel(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var flightID int64
	err = tx.QueryRow(ctx, `UPDATE reservations SET status=$1, updated_at=now() WHERE id=$2 AND status <> $1 RETURNING flight_id`,
		domain.ReservationStatusCancelled, id).Scan(&flightID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFoundf("reservation not found or already cancelled")
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available = LEAST(seats_available + 1, seat_capacity), updated_at = now() WHERE id=$1`, flightID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *PGReservationRepository) SeatTaken(ctx context.Context, flightID int64, seatCode string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM reservations WHERE flight_id=$1 AND seat_code=$2 AND status <> $3 AND id <> $4
		)`, flightID, seatCode, domain.ReservationStatusCancelled, excludeID).Scan(&taken)
	return taken, err
}

func (r *PGReservationRepository) OccupiedSeats(ctx context.Context, flightID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_code FROM reservations WHERE flight_id=$1 AND status <> $2 ORDER BY seat_code`,
		flightID, domain.ReservationStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]string, 0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		seats = append(seats, code)
	}
	return seats, rows.Err()
}

func (r *PGReservationRepository) PNRExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE pnr=$1)`, code).Scan(&exists)
	return exists, err
}

func (r *PGReservationRepository) BoardingPassExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE boarding_pass_no=$1)`, code).Scan(&exists)
	return exists, err
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
