package chat

import (
	"regexp"
	"strings"

	"github.com/airparadise/chatbot/internal/domain"
)

// Content heuristics that drive stage transitions. The model's completion is
// surfaced verbatim; these only look at the user's own message, so a creative
// model reply can never advance the booking on its own.

var (
	bookRequestRe = regexp.MustCompile(`(?i)\bbook\b.*?\b([A-Za-z]{2})\s?(\d{1,4})\b`)
	passportRe    = regexp.MustCompile(`\d{4,}[A-Za-z0-9]*`)
	digitRe       = regexp.MustCompile(`\d`)
)

var resetPhrases = []string{"reset", "start over", "new booking", "new search"}

func isResetRequest(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.Trim(normalized, ".!?")
	for _, phrase := range resetPhrases {
		if normalized == phrase {
			return true
		}
	}
	return false
}

// parseBookingRequest extracts a flight designator from messages like
// "Book WN123" or "book flight WN 123".
func parseBookingRequest(message string) (domain.FlightDesignator, bool) {
	match := bookRequestRe.FindStringSubmatch(message)
	if match == nil {
		return domain.FlightDesignator{}, false
	}
	return domain.FlightDesignator{
		Airline:      strings.ToUpper(match[1]),
		FlightNumber: match[2],
	}, true
}

// parsePassengerInfo splits "John Doe, 123456789" into name and passport. The
// passport is the first digit-bearing token; without one the message does not
// plausibly carry passenger info and the stage stays put.
func parsePassengerInfo(message string) (name, passport string, ok bool) {
	text := strings.TrimSpace(message)
	if text == "" {
		return "", "", false
	}

	passport = passportRe.FindString(text)
	if passport == "" {
		return "", "", false
	}

	name = strings.Replace(text, passport, "", 1)
	name = strings.Trim(name, " ,.;:-")
	if name == "" {
		name = "Guest"
	}
	return name, passport, true
}

// looksLikePayment accepts any non-empty message carrying a digit, e.g. a
// simulated card number.
func looksLikePayment(message string) bool {
	text := strings.TrimSpace(message)
	return text != "" && digitRe.MatchString(text)
}
