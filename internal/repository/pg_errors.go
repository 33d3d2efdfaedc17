package repository

import (
	"errors"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// translateUnique maps unique-constraint violations onto the domain error
// taxonomy by constraint name. This is the real seat/identifier exclusivity
// mechanism; the in-service pre-checks only make the common case friendlier.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "uniq_active_seat":
		return domain.Conflictf("seat is already booked on this flight")
	case "reservations_pnr_key":
		return domain.Duplicatef("PNR already exists")
	case "reservations_boarding_pass_no_key":
		return domain.Duplicatef("boarding pass number already exists")
	case "flights_flight_number_key":
		return domain.Duplicatef("flight number already exists")
	case "users_email_key":
		return domain.Duplicatef("email already exists")
	}
	return domain.Duplicatef("duplicate value: %s", pgErr.ConstraintName)
}
