package domain

// FlightDesignator identifies a flight the way travellers write it: airline
// code plus flight number, e.g. WN123.
type FlightDesignator struct {
	Airline      string
	FlightNumber string
}

func (d FlightDesignator) String() string {
	return d.Airline + d.FlightNumber
}

// Booking is a confirmed booking record. Created once, immutable afterwards.
type Booking struct {
	ID             int64
	FlightID       int64
	UserName       string
	PassportNumber string
	Reference      string
}
