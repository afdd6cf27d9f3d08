package llm

import (
	"testing"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPrompt_Initial(t *testing.T) {
	prompt := BuildSystemPrompt(domain.NewBookingState())

	assert.Contains(t, prompt, "AIR PARADISE")
	assert.Contains(t, prompt, "Table: flights")
	assert.Contains(t, prompt, "Table: bookings")
	assert.Contains(t, prompt, "Only generate SELECT queries")
	assert.NotContains(t, prompt, "Current booking state")
}

func TestBuildSystemPrompt_BookingAugmentation(t *testing.T) {
	state := domain.NewBookingState().
		WithFlight(domain.FlightDesignator{Airline: "WN", FlightNumber: "123"})

	prompt := BuildSystemPrompt(state)
	assert.Contains(t, prompt, "Current booking state: "+string(domain.StageAwaitingPassengerInfo))
	assert.Contains(t, prompt, "booking flight WN123")
	assert.NotContains(t, prompt, "credit card information")

	state = state.WithPassenger("John Doe", "123456789")
	prompt = BuildSystemPrompt(state)
	assert.Contains(t, prompt, "Current booking state: "+string(domain.StageAwaitingPayment))
	assert.Contains(t, prompt, "The user's name is John Doe.")
	assert.Contains(t, prompt, "credit card information")
	// Passport numbers never leak into the prompt.
	assert.NotContains(t, prompt, "123456789")
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	state := domain.NewBookingState().
		WithFlight(domain.FlightDesignator{Airline: "AS", FlightNumber: "99"}).
		WithPassenger("Jane Roe", "987654321")

	assert.Equal(t, BuildSystemPrompt(state), BuildSystemPrompt(state))
}
