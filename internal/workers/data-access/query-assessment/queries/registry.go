// internal/workers/data-access/query-assessment/queries/registry.go
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"greenbridge-workers/internal/common/database"
	"greenbridge-workers/internal/models"
)

var (
	ErrMissingParam     = errors.New("missing required parameter")
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrNotFound         = errors.New("no assessment found")
)

// Store bundles the read-side backends. Redis is optional; queries that
// can use it fall back to Postgres when it is nil or misses.
type Store struct {
	DB    *sql.DB
	Redis *database.RedisClient
}

// QueryFunc returns: data, rowCount, executionTime (ms), error
type QueryFunc func(ctx context.Context, store *Store, params map[string]interface{}) (interface{}, int, int64, error)

var Registry = map[models.QueryType]QueryFunc{
	models.QueryTypeLatestAssessment: LatestAssessment,
	models.QueryTypeUserProfile:      UserProfile,
}

func Execute(ctx context.Context, store *Store, queryType models.QueryType, params map[string]interface{}) (interface{}, int, int64, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}
	return fn(ctx, store, params)
}
