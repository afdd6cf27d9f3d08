package sqlgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeQuery(t *testing.T) {
	assert.True(t, LooksLikeQuery("SELECT * FROM flights"))
	assert.True(t, LooksLikeQuery("  select airline FROM flights"))
	assert.True(t, LooksLikeQuery("\nSeLeCt 1"))
	assert.False(t, LooksLikeQuery("Please provide your full name and passport number."))
	assert.False(t, LooksLikeQuery(""))
	assert.False(t, LooksLikeQuery("The SELECT query you need is..."))
}

func TestValidate_NotAQuery(t *testing.T) {
	cases := []string{
		"Hello! How can I help you today?",
		"DROP TABLE flights",
		"  please run SELECT * FROM flights",
		"",
	}
	for _, text := range cases {
		approved, rejection := Validate(text)
		assert.Empty(t, approved)
		if assert.NotNil(t, rejection, "input: %q", text) {
			assert.Contains(t, rejection.Reason, "not a query")
		}
	}
}

func TestValidate_MustReferenceFlights(t *testing.T) {
	_, rejection := Validate("SELECT * FROM bookings WHERE booking_id=1")
	if assert.NotNil(t, rejection) {
		assert.Contains(t, rejection.Reason, "flights table")
	}
}

func TestValidate_MultipleStatements(t *testing.T) {
	_, rejection := Validate("SELECT * FROM flights; SELECT * FROM flights")
	if assert.NotNil(t, rejection) {
		assert.Contains(t, rejection.Reason, "statements are not allowed")
	}
}

func TestValidate_BannedKeywords(t *testing.T) {
	cases := []struct {
		query   string
		keyword string
	}{
		{"SELECT * FROM flights WHERE id IN (SELECT 1) UNION SELECT * FROM bookings", "UNION"},
		{"SELECT * FROM flights; drop table flights", "DROP"},
		{"SELECT * FROM flights WHERE airline='x' AND 1=1; DELETE FROM flights", "DELETE"},
		{"SELECT * FROM flights where TrUnCaTe", "TRUNCATE"},
	}
	for _, tc := range cases {
		_, rejection := Validate(tc.query)
		if assert.NotNil(t, rejection, "query: %q", tc.query) {
			assert.Contains(t, rejection.Reason, "disallowed keyword")
		}
	}
}

// The classic injection candidate: rejected before the keyword check even
// runs, because it does not start with SELECT.
func TestValidate_InjectionAttempt(t *testing.T) {
	approved, rejection := Validate("DROP TABLE flights; SELECT * FROM flights")
	assert.Empty(t, approved)
	assert.NotNil(t, rejection)
}

func TestValidate_ApprovesAndSanitizes(t *testing.T) {
	query := "SELECT * FROM flights WHERE origin_airport='LAX' AND destination_airport='SEA' AND year=2025 AND month=6 AND day=15;"
	approved, rejection := Validate(query)
	assert.Nil(t, rejection)
	assert.Equal(t, "SELECT * FROM flights WHERE origin_airport='LAX' AND destination_airport='SEA' AND year=2025 AND month=6 AND day=15", approved)
}

// Re-validating approved output approves it unchanged.
func TestValidate_SanitizationIdempotent(t *testing.T) {
	queries := []string{
		"SELECT * FROM flights;",
		"select airline, flight_number from flights where year=2025",
		"  SELECT * FROM flights WHERE month=6  ",
	}
	for _, q := range queries {
		first, rejection := Validate(q)
		assert.Nil(t, rejection, "query: %q", q)

		second, rejection := Validate(first)
		assert.Nil(t, rejection, "sanitized: %q", first)
		assert.Equal(t, first, second)
	}
}

func TestValidate_CaseInsensitiveFromClause(t *testing.T) {
	approved, rejection := Validate("SELECT airline from Flights WHERE day=1")
	assert.Nil(t, rejection)
	assert.NotEmpty(t, approved)
}
