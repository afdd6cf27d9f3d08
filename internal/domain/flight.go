package domain

// Flight is the read-only projection of a flights catalog row that the chat
// API returns to the caller. Column generated_price surfaces as predicted_price.
type Flight struct {
	ID                 int64   `json:"id"`
	Airline            string  `json:"airline"`
	FlightNumber       string  `json:"flight_number"`
	OriginAirport      string  `json:"origin_airport"`
	DestinationAirport string  `json:"destination_airport"`
	ScheduledDeparture string  `json:"scheduled_departure"`
	ScheduledArrival   string  `json:"scheduled_arrival"`
	PredictedPrice     float64 `json:"predicted_price"`
	AirTime            int     `json:"air_time"`
	Distance           int     `json:"distance"`
	Year               int     `json:"year"`
	Month              int     `json:"month"`
	Day                int     `json:"day"`
	DayOfWeek          int     `json:"day_of_week"`
}
