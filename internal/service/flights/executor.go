package flights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/airparadise/chatbot/internal/repository"
	"go.uber.org/zap"
)

// QueryCache memoizes approved-query results by signature. A nil, nil return
// from GetFlights is a miss.
type QueryCache interface {
	GetFlights(ctx context.Context, signature string) ([]domain.Flight, error)
	SetFlights(ctx context.Context, signature string, flights []domain.Flight) error
}

// QueryExecutor runs gate-approved, read-only queries, consulting the cache
// first. The query text arrives fully resolved; no parameters are
// interpolated here.
type QueryExecutor struct {
	repo   repository.FlightRepository
	cache  QueryCache
	logger *zap.Logger
}

func NewQueryExecutor(repo repository.FlightRepository, cache QueryCache, logger *zap.Logger) *QueryExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryExecutor{repo: repo, cache: cache, logger: logger}
}

// Signature derives the deterministic cache key for an approved query's exact
// text.
func Signature(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}

func (e *QueryExecutor) Execute(ctx context.Context, approvedQuery string) ([]domain.Flight, error) {
	signature := Signature(approvedQuery)

	if e.cache != nil {
		cached, err := e.cache.GetFlights(ctx, signature)
		if err != nil {
			// Cache failure is never fatal; fall through to the database.
			e.logger.Warn("query cache read failed", zap.Error(err))
		} else if cached != nil {
			e.logger.Debug("query cache hit", zap.String("signature", signature))
			return cached, nil
		}
	}

	flights, err := e.repo.Search(ctx, approvedQuery)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.SetFlights(ctx, signature, flights); err != nil {
			e.logger.Warn("query cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}
