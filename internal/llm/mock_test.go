package llm

import (
	"context"
	"testing"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMock_FlightSearchProducesQuery(t *testing.T) {
	m := NewMock()
	prompt := BuildSystemPrompt(domain.NewBookingState())

	completion, err := m.Complete(context.Background(), prompt, nil, "Find flights from LAX to SEA on June 15")
	assert.NoError(t, err)
	assert.Contains(t, completion, "SELECT * FROM flights")
	assert.Contains(t, completion, "origin_airport='LAX'")
	assert.Contains(t, completion, "destination_airport='SEA'")
}

func TestMock_BookingFlow(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	completion, err := m.Complete(ctx, BuildSystemPrompt(domain.NewBookingState()), nil, "Book WN123")
	assert.NoError(t, err)
	assert.Contains(t, completion, "full name and passport number")

	state := domain.NewBookingState().WithFlight(domain.FlightDesignator{Airline: "WN", FlightNumber: "123"})
	completion, err = m.Complete(ctx, BuildSystemPrompt(state), nil, "John Doe, 123456789")
	assert.NoError(t, err)
	assert.Contains(t, completion, "credit card")

	state = state.WithPassenger("John Doe", "123456789")
	completion, err = m.Complete(ctx, BuildSystemPrompt(state), nil, "1234-5678-9012-3456")
	assert.NoError(t, err)
	assert.Contains(t, completion, "confirmed")
}

func TestMock_DefaultReply(t *testing.T) {
	m := NewMock()

	completion, err := m.Complete(context.Background(), BuildSystemPrompt(domain.NewBookingState()), nil, "what's the weather like?")
	assert.NoError(t, err)
	assert.Contains(t, completion, "search for flights")
}
