// internal/workers/data-access/query-assessment/queries/user_profile.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

// UserProfile returns the lightweight profile summary used by the
// notification and CRM workers. Always served from Postgres.
func UserProfile(ctx context.Context, store *Store, params map[string]interface{}) (interface{}, int, int64, error) {
	userID, ok := params["userId"].(string)
	if !ok || userID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, category, rating string
	var score int
	var carbonEstimate float64
	var updatedAt time.Time

	err := store.DB.QueryRowContext(ctx, `
		SELECT id, category, score, rating, carbon_estimate, updated_at
		FROM user_profiles
		WHERE user_id = $1`, userID).Scan(
		&id, &category, &score, &rating, &carbonEstimate, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, 0, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":             id,
		"userId":         userID,
		"category":       category,
		"score":          score,
		"rating":         rating,
		"carbonEstimate": carbonEstimate,
		"updatedAt":      updatedAt,
	}

	return result, 1, time.Since(start).Milliseconds(), nil
}
