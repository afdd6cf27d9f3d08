package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Search(ctx context.Context, approvedQuery string) ([]domain.Flight, error) {
	args := m.Called(ctx, approvedQuery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByDesignator(ctx context.Context, d domain.FlightDesignator) (*domain.Flight, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var designator = domain.FlightDesignator{Airline: "WN", FlightNumber: "123"}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockFlights, mockProducer, "booking_topic", nil,
		WithNotificationsTopic("notifications_topic"))

	ctx := context.Background()
	flight := &domain.Flight{ID: 42, Airline: "WN", FlightNumber: "123"}

	mockFlights.On("GetByDesignator", ctx, designator).Return(flight, nil).Once()
	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications_topic", mock.Anything, mock.Anything).Return(nil).Once()

	booked, err := service.CreateBooking(ctx, CreateBookingInput{
		Flight:         designator,
		PassengerName:  "John Doe",
		PassportNumber: "123456789",
	})

	assert.NoError(t, err)
	assert.NotNil(t, booked)
	assert.Equal(t, int64(42), booked.FlightID)
	assert.Equal(t, "John Doe", booked.UserName)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), booked.Reference)

	mockFlights.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_ValidationErrors(t *testing.T) {
	service := NewBookingService(&MockBookingRepository{}, &MockFlightRepository{}, nil, "", nil)
	ctx := context.Background()

	testCases := []struct {
		name        string
		input       CreateBookingInput
		expectedErr string
	}{
		{
			name:        "missing name",
			input:       CreateBookingInput{Flight: designator, PassportNumber: "123456789"},
			expectedErr: "passenger name is required",
		},
		{
			name:        "missing passport",
			input:       CreateBookingInput{Flight: designator, PassengerName: "John Doe"},
			expectedErr: "passport number is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateBooking(ctx, tc.input)
			assert.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestBookingService_CreateBooking_UnknownFlight(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewBookingService(mockBookings, mockFlights, nil, "", nil)
	ctx := context.Background()

	mockFlights.On("GetByDesignator", ctx, designator).Return(nil, errors.New("no rows in result set")).Once()

	_, err := service.CreateBooking(ctx, CreateBookingInput{
		Flight:         designator,
		PassengerName:  "John Doe",
		PassportNumber: "123456789",
	})

	assert.Error(t, err)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Publish failures must not fail the booking; the record is already persisted.
func TestBookingService_CreateBooking_PublishFailureTolerated(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockFlights, mockProducer, "booking_topic", nil)
	ctx := context.Background()

	mockFlights.On("GetByDesignator", ctx, designator).Return(&domain.Flight{ID: 7}, nil).Once()
	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	booked, err := service.CreateBooking(ctx, CreateBookingInput{
		Flight:         designator,
		PassengerName:  "John Doe",
		PassportNumber: "123456789",
	})

	assert.NoError(t, err)
	assert.NotNil(t, booked)
	mockProducer.AssertExpectations(t)
}

func TestNewReference_Format(t *testing.T) {
	seen := make(map[string]bool)
	re := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 100; i++ {
		ref := NewReference()
		assert.Regexp(t, re, ref)
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 1)
}
