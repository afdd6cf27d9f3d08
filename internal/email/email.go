package email

import (
	"context"
	"fmt"

	"github.com/airparadise/chatbot/internal/kafka"
)

// Sender emits booking confirmation notifications. Delivery is simulated.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send confirmation to %s: flight %s%s booked, reference %s\n",
		event.UserName, event.Airline, event.FlightNumber, event.BookingReference)
	return nil
}
