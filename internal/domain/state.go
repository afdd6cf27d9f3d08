package domain

type BookingStage string

const (
	StageInitial               BookingStage = "INITIAL"
	StageAwaitingPassengerInfo BookingStage = "AWAITING_PASSENGER_INFO"
	StageAwaitingPayment       BookingStage = "AWAITING_PAYMENT"
	StageConfirmed             BookingStage = "CONFIRMED"
)

// BookingState is the per-session booking progress. It is a value: each
// transition returns a new state and the session store replaces the old one
// atomically, so state is never mutated in place across turns.
type BookingState struct {
	Stage          BookingStage
	Flight         *FlightDesignator
	PassengerName  string
	PassportNumber string
}

func NewBookingState() BookingState {
	return BookingState{Stage: StageInitial}
}

// WithFlight records the selected flight and moves the stage forward to
// collecting passenger details.
func (s BookingState) WithFlight(d FlightDesignator) BookingState {
	s.Flight = &d
	s.Stage = StageAwaitingPassengerInfo
	return s
}

// WithPassenger records name and passport and moves on to payment.
func (s BookingState) WithPassenger(name, passport string) BookingState {
	s.PassengerName = name
	s.PassportNumber = passport
	s.Stage = StageAwaitingPayment
	return s
}

func (s BookingState) Confirm() BookingState {
	s.Stage = StageConfirmed
	return s
}

// Reset clears every field. The only transition that moves backwards.
func (s BookingState) Reset() BookingState {
	return NewBookingState()
}
