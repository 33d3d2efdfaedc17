package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusBooked    ReservationStatus = "booked"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Seat struct {
	Code    string `json:"code"`
	Premium bool   `json:"premium"`
}

type Meal struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// Bill is always derived by the fare calculator, never taken from a client.
type Bill struct {
	BaseFare   float64 `json:"base_fare"`
	SeatFee    float64 `json:"seat_fee"`
	MealFee    float64 `json:"meal_fee"`
	BaggageFee float64 `json:"baggage_fee"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

type Reservation struct {
	ID             int64             `json:"id"`
	FlightID       int64             `json:"flight_id"`
	UserID         *int64            `json:"user_id,omitempty"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Passport       string            `json:"passport"`
	Seat           Seat              `json:"seat"`
	Meal           Meal              `json:"meal"`
	BaggageKg      float64           `json:"baggage_kg"`
	Bill           Bill              `json:"bill"`
	Status         ReservationStatus `json:"status"`
	PNR            string            `json:"pnr"`
	CheckedIn      bool              `json:"checked_in"`
	BoardingPassNo *string           `json:"boarding_pass_no,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Active reports whether the reservation still holds its seat.
func (r *Reservation) Active() bool {
	return r.Status != ReservationStatusCancelled
}
