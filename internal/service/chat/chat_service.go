package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/airparadise/chatbot/internal/llm"
	"github.com/airparadise/chatbot/internal/service/booking"
	"github.com/airparadise/chatbot/internal/session"
	"github.com/airparadise/chatbot/internal/sqlgate"
	"go.uber.org/zap"
)

// Fixed user-facing strings. The user never sees raw errors or query text.
const (
	transportApology  = "Sorry, I'm having trouble connecting to my language processing service. Please try again."
	rateLimitApology  = "I'm currently experiencing high demand. Please try again in a moment."
	genericFailure    = "Sorry, something went wrong while processing your request. Please try again."
	resetReply        = "No problem, let's start over. How can I help you with your next trip?"
	noFlightsReply    = "I couldn't find any flights matching your search. Try different airports or dates."
	foundFlightsReply = "I found %d flight(s) matching your search."
)

type ChatUseCase interface {
	HandleMessage(ctx context.Context, input ChatInput) (*ChatResult, error)
}

type ModelGateway interface {
	Complete(ctx context.Context, systemPrompt string, history []domain.Turn, message string) (string, error)
}

type QueryExecutor interface {
	Execute(ctx context.Context, approvedQuery string) ([]domain.Flight, error)
}

type ChatInput struct {
	SessionID string
	Message   string
	History   []domain.Turn
}

type ChatResult struct {
	SessionID string
	Response  string
	Flights   []domain.Flight
}

// ChatService drives one conversation turn: session state in, prompt out to
// the model, completion classified as query or conversation, booking stages
// advanced, session state atomically replaced.
type ChatService struct {
	sessions   *session.Store
	gateway    ModelGateway
	executor   QueryExecutor
	bookings   booking.BookingUseCase
	llmTimeout time.Duration
	dbTimeout  time.Duration
	logger     *zap.Logger
}

func NewChatService(
	sessions *session.Store,
	gateway ModelGateway,
	executor QueryExecutor,
	bookings booking.BookingUseCase,
	llmTimeout, dbTimeout time.Duration,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		sessions:   sessions,
		gateway:    gateway,
		executor:   executor,
		bookings:   bookings,
		llmTimeout: llmTimeout,
		dbTimeout:  dbTimeout,
		logger:     logger,
	}
}

// HandleMessage processes one turn. Turns for the same session id are
// serialized; a concurrent second turn fails with session.ErrTurnInProgress.
func (s *ChatService) HandleMessage(ctx context.Context, input ChatInput) (*ChatResult, error) {
	if isResetRequest(input.Message) {
		fresh, err := s.sessions.Reset(input.SessionID)
		if err != nil {
			return nil, err
		}
		s.logger.Info("session reset", zap.String("old_session", input.SessionID), zap.String("new_session", fresh))
		return &ChatResult{SessionID: fresh, Response: resetReply, Flights: []domain.Flight{}}, nil
	}

	sess, err := s.sessions.BeginTurn(input.SessionID)
	if err != nil {
		return nil, err
	}
	defer s.sessions.EndTurn(input.SessionID)

	// First contact after a front-end reload: seed the turn window from the
	// caller-supplied history.
	if len(sess.Turns) == 0 && len(input.History) > 0 {
		window := s.sessions.HistoryWindow()
		h := input.History
		if len(h) > window {
			h = h[len(h)-window:]
		}
		sess.Turns = append([]domain.Turn(nil), h...)
	}

	systemPrompt := llm.BuildSystemPrompt(sess.State)

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	completion, err := s.gateway.Complete(llmCtx, systemPrompt, sess.Turns, input.Message)
	if err != nil {
		// Recovered locally: fixed apology, the turn is not a query or
		// booking step, stage and history stay as they were.
		s.logger.Warn("model gateway failed", zap.String("session", input.SessionID), zap.Error(err))
		apology := transportApology
		if errors.Is(err, llm.ErrRateLimited) {
			apology = rateLimitApology
		}
		return &ChatResult{SessionID: input.SessionID, Response: apology, Flights: []domain.Flight{}}, nil
	}

	if sqlgate.LooksLikeQuery(completion) {
		return s.handleQuery(ctx, input, sess, completion)
	}
	return s.handleConversation(ctx, input, sess, completion)
}

func (s *ChatService) handleQuery(ctx context.Context, input ChatInput, sess domain.Session, completion string) (*ChatResult, error) {
	approved, rejection := sqlgate.Validate(completion)
	if rejection != nil {
		// Nothing is executed; ask the user to rephrase, stage unchanged.
		s.logger.Info("query rejected by safety gate",
			zap.String("session", input.SessionID), zap.String("reason", rejection.Reason))
		response := fmt.Sprintf("I can't run that search (%s). Could you rephrase your request?", rejection.Reason)
		s.storeTurn(input.SessionID, sess, sess.State, input.Message, response)
		return &ChatResult{SessionID: input.SessionID, Response: response, Flights: []domain.Flight{}}, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	flights, err := s.executor.Execute(dbCtx, approved)
	if err != nil {
		// State untouched so the user can retry the same search.
		s.logger.Error("flight query failed", zap.String("session", input.SessionID), zap.Error(err))
		return &ChatResult{SessionID: input.SessionID, Response: genericFailure, Flights: []domain.Flight{}}, nil
	}

	response := noFlightsReply
	if len(flights) > 0 {
		response = fmt.Sprintf(foundFlightsReply, len(flights))
	}
	s.storeTurn(input.SessionID, sess, sess.State, input.Message, response)
	return &ChatResult{SessionID: input.SessionID, Response: response, Flights: flights}, nil
}

func (s *ChatService) handleConversation(ctx context.Context, input ChatInput, sess domain.Session, completion string) (*ChatResult, error) {
	state := sess.State
	response := completion
	flights := []domain.Flight{}

	switch state.Stage {
	case domain.StageInitial:
		if designator, ok := parseBookingRequest(input.Message); ok {
			state = state.WithFlight(designator)
		}
	case domain.StageAwaitingPassengerInfo:
		if name, passport, ok := parsePassengerInfo(input.Message); ok {
			state = state.WithPassenger(name, passport)
		}
	case domain.StageAwaitingPayment:
		if looksLikePayment(input.Message) && state.Flight != nil {
			dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
			defer cancel()

			booked, err := s.bookings.CreateBooking(dbCtx, booking.CreateBookingInput{
				Flight:         *state.Flight,
				PassengerName:  state.PassengerName,
				PassportNumber: state.PassportNumber,
			})
			if err != nil {
				// State untouched so the user can retry the payment step.
				s.logger.Error("booking creation failed", zap.String("session", input.SessionID), zap.Error(err))
				return &ChatResult{SessionID: input.SessionID, Response: genericFailure, Flights: flights}, nil
			}
			state = state.Confirm()
			response = fmt.Sprintf("Booking confirmed! Your reference is %s. Thank you for flying AIR PARADISE, %s.",
				booked.Reference, booked.UserName)
		}
	}

	s.storeTurn(input.SessionID, sess, state, input.Message, response)
	return &ChatResult{SessionID: input.SessionID, Response: response, Flights: flights}, nil
}

func (s *ChatService) storeTurn(id string, sess domain.Session, state domain.BookingState, userMsg, botMsg string) {
	sess.State = state
	sess = sess.WithTurn(domain.Turn{User: userMsg, Bot: botMsg}, s.sessions.HistoryWindow())
	s.sessions.Update(id, sess)
}

var _ ChatUseCase = (*ChatService)(nil)
