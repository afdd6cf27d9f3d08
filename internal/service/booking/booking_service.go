package booking

import (
	"context"
	"errors"
	"math/rand"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/airparadise/chatbot/internal/kafka"
	"github.com/airparadise/chatbot/internal/repository"
	"go.uber.org/zap"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	Flight         domain.FlightDesignator
	PassengerName  string
	PassportNumber string
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	bookingTopic string,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking resolves the designator against the catalog, issues a booking
// reference and persists the record. The insert happens exactly once per
// confirmation and is never retried here.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.PassengerName == "" {
		return nil, errors.New("passenger name is required")
	}
	if input.PassportNumber == "" {
		return nil, errors.New("passport number is required")
	}

	flight, err := s.flights.GetByDesignator(ctx, input.Flight)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		FlightID:       flight.ID,
		UserName:       input.PassengerName,
		PassportNumber: input.PassportNumber,
		Reference:      NewReference(),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_confirmed", input.Flight, booking); err != nil {
		s.logger.Warn("failed to publish booking_confirmed event",
			zap.String("reference", booking.Reference), zap.Error(err))
	}
	return booking, nil
}

// NewReference samples 6 characters uniformly from A-Z0-9. Collisions are not
// checked; at the simulated booking volume the probability is negligible.
func NewReference() string {
	ref := make([]byte, 6)
	for i := range ref {
		ref[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return string(ref)
}

func (s *BookingService) publish(ctx context.Context, eventType string, flight domain.FlightDesignator, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:             eventType,
		BookingReference: booking.Reference,
		FlightID:         booking.FlightID,
		Airline:          flight.Airline,
		FlightNumber:     flight.FlightNumber,
		UserName:         booking.UserName,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
