package email

import (
	"context"
	"fmt"

	"github.com/avelora/flightreserve/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	fmt.Printf("send email to %s about %s for PNR %s seat %s\n", event.Email, event.Type, event.PNR, event.SeatCode)
	return nil
}
