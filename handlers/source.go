package handlers

import (
	"errors"
	"log"

	"realty-api/repository"
	"realty-api/types"

	"github.com/gin-gonic/gin"
)

// ErrDatabaseUnavailable is returned when the caller forces source=db but
// no database connection was configured at startup.
var ErrDatabaseUnavailable = errors.New("database backend not configured")

// fromSource runs the request body against exactly one backend and reports
// which one produced the result.
//
//   - source=mock forces the mock backend; its error propagates.
//   - source=db forces the database backend with no fallback; its error
//     propagates so the caller sees the real failure.
//   - otherwise the database is used when configured, and on failure the
//     request is retried once against the mock backend after a diagnostic
//     log line. The database is attempted at most once per request.
//
// run is invoked with the chosen store and assigns its result to variables
// captured by the handler, so a fallback rerun fully replaces any partial
// result from the failed database attempt.
func (h *ListingsHandler) fromSource(c *gin.Context, run func(repository.ListingsStore) error) (types.Source, error) {
	switch types.ParseSource(c.Query("source")) {
	case types.SourceMock:
		return types.SourceMock, run(h.mock)
	case types.SourceDatabase:
		if h.db == nil {
			return types.SourceDatabase, ErrDatabaseUnavailable
		}
		return types.SourceDatabase, run(h.db)
	default:
		if h.db == nil {
			return types.SourceMock, run(h.mock)
		}
		if err := run(h.db); err != nil {
			log.Printf("database query failed, serving mock data: %v (requestId=%s)", err, c.GetString("requestId"))
			return types.SourceMock, run(h.mock)
		}
		return types.SourceDatabase, nil
	}
}
