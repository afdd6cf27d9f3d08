package domain

import "time"

// Turn is one user message paired with the assistant reply to it.
type Turn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// Session is a caller-identified conversation: booking progress plus the
// trailing turn window sent to the model. Sessions live in memory only.
type Session struct {
	ID           string
	State        BookingState
	Turns        []Turn
	LastActivity time.Time
}

// WithTurn appends a turn, keeping at most window turns. Returns a new
// session value with a freshly allocated turn slice.
func (s Session) WithTurn(t Turn, window int) Session {
	turns := make([]Turn, 0, len(s.Turns)+1)
	turns = append(turns, s.Turns...)
	turns = append(turns, t)
	if window > 0 && len(turns) > window {
		turns = turns[len(turns)-window:]
	}
	s.Turns = turns
	return s
}
