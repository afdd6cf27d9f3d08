package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/airparadise/chatbot/internal/domain"
)

var fromToRe = regexp.MustCompile(`(?i)from\s+([a-z]{3})\s+to\s+([a-z]{3})`)

// Mock is a deterministic gateway for running without an API key. Responses
// are keyed on the user message and, for the booking flow, on the stage the
// prompt augmentation carries.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Complete(_ context.Context, systemPrompt string, _ []domain.Turn, message string) (string, error) {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "flight") ||
		(strings.Contains(lower, "from") && strings.Contains(lower, "to")) {
		origin, destination := "LAX", "SEA"
		if match := fromToRe.FindStringSubmatch(message); match != nil {
			origin = strings.ToUpper(match[1])
			destination = strings.ToUpper(match[2])
		}
		return fmt.Sprintf("SELECT * FROM flights WHERE origin_airport='%s' AND destination_airport='%s' AND year=2015 AND month=1 AND day=1;", origin, destination), nil
	}

	if strings.Contains(lower, "book") {
		return "Please provide your full name and passport number.", nil
	}

	if strings.Contains(systemPrompt, string(domain.StageAwaitingPassengerInfo)) {
		return "Thank you. Please enter your credit card number for payment simulation.", nil
	}
	if strings.Contains(systemPrompt, string(domain.StageAwaitingPayment)) {
		return "Payment processed. Your booking is confirmed!", nil
	}

	if strings.Contains(lower, "hello") || strings.Contains(lower, "hi") {
		return "Hello! I'm AIR PARADISE's virtual assistant. How can I help you today? I can help you search for flights or make a booking.", nil
	}
	if strings.Contains(lower, "thank") {
		return "You're welcome! Is there anything else I can help you with?", nil
	}

	return "I can help you search for flights or make a booking. For example, you could ask me to find flights from LAX to SEA on June 15, 2025.", nil
}
