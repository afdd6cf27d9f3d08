package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Search(ctx context.Context, approvedQuery string) ([]domain.Flight, error)
	GetByDesignator(ctx context.Context, d domain.FlightDesignator) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// Search runs a gate-approved SELECT verbatim. The model controls the column
// list, so rows are mapped to the projection by column name rather than by
// position.
func (r *PGFlightRepository) Search(ctx context.Context, approvedQuery string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, approvedQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		var f domain.Flight
		for i, fd := range fields {
			if i < len(values) {
				assignColumn(&f, string(fd.Name), values[i])
			}
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByDesignator(ctx context.Context, d domain.FlightDesignator) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT flight_id, airline, flight_number, origin_airport, destination_airport, scheduled_departure, scheduled_arrival, distance, air_time, year, month, day, day_of_week, generated_price FROM flights WHERE airline=$1 AND flight_number=$2 LIMIT 1`, d.Airline, d.FlightNumber)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.OriginAirport, &f.DestinationAirport, &f.ScheduledDeparture, &f.ScheduledArrival, &f.Distance, &f.AirTime, &f.Year, &f.Month, &f.Day, &f.DayOfWeek, &f.PredictedPrice); err != nil {
		return nil, err
	}
	return &f, nil
}

func assignColumn(f *domain.Flight, column string, value any) {
	switch column {
	case "flight_id":
		f.ID = toInt64(value)
	case "airline":
		f.Airline = toString(value)
	case "flight_number":
		f.FlightNumber = toString(value)
	case "origin_airport":
		f.OriginAirport = toString(value)
	case "destination_airport":
		f.DestinationAirport = toString(value)
	case "scheduled_departure":
		f.ScheduledDeparture = toString(value)
	case "scheduled_arrival":
		f.ScheduledArrival = toString(value)
	case "distance":
		f.Distance = int(toInt64(value))
	case "air_time":
		f.AirTime = int(toInt64(value))
	case "year":
		f.Year = int(toInt64(value))
	case "month":
		f.Month = int(toInt64(value))
	case "day":
		f.Day = int(toInt64(value))
	case "day_of_week":
		f.DayOfWeek = int(toInt64(value))
	case "generated_price":
		f.PredictedPrice = toFloat64(value)
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
