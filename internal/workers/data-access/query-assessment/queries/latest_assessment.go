// internal/workers/data-access/query-assessment/queries/latest_assessment.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"greenbridge-workers/internal/models"
)

// LatestAssessment returns the single stored assessment for a user. The
// Redis copy is checked first; on a miss the user_profiles row is read and
// the cache entry stays cold until the next persist.
func LatestAssessment(ctx context.Context, store *Store, params map[string]interface{}) (interface{}, int, int64, error) {
	userID, ok := params["userId"].(string)
	if !ok || userID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	if profile, hit := latestFromCache(ctx, store, userID); hit {
		return profile, 1, time.Since(start).Milliseconds(), nil
	}

	var (
		profile     models.UserProfile
		category    string
		initialJSON []byte
		intakeJSON  []byte
	)

	err := store.DB.QueryRowContext(ctx, `
		SELECT id, user_id, category, initial_data, intake_data,
		       score, rating, carbon_estimate, updated_at
		FROM user_profiles
		WHERE user_id = $1`, userID).Scan(
		&profile.ID, &profile.UserID, &category,
		&initialJSON, &intakeJSON,
		&profile.Score, &profile.Rating,
		&profile.CarbonEstimate, &profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, 0, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, 0, err
	}

	profile.Category = models.Category(category)
	if len(initialJSON) > 0 {
		_ = json.Unmarshal(initialJSON, &profile.InitialData)
	}
	if len(intakeJSON) > 0 {
		_ = json.Unmarshal(intakeJSON, &profile.IntakeData)
	}

	return profile, 1, time.Since(start).Milliseconds(), nil
}

func latestFromCache(ctx context.Context, store *Store, userID string) (models.UserProfile, bool) {
	var profile models.UserProfile
	if store.Redis == nil {
		return profile, false
	}

	raw, err := store.Redis.Get(ctx, models.LatestAssessmentCacheKey(userID))
	if err != nil {
		return profile, false
	}
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return profile, false
	}
	return profile, true
}
