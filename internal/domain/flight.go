package domain

import "time"

type Flight struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Airline        string    `json:"airline"`
	AircraftType   string    `json:"aircraft_type"`
	Schedule       time.Time `json:"schedule"`
	Price          float64   `json:"price"`
	SeatCapacity   int       `json:"seat_capacity"`
	SeatsAvailable int       `json:"seats_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
