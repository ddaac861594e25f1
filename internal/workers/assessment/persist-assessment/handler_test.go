// internal/workers/assessment/persist-assessment/handler_test.go
package persistassessment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"greenbridge-workers/internal/common/database"
	"greenbridge-workers/internal/common/errors"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	h := NewHandler(LoadConfig(), logger.NewTestLogger(t), &database.PostgresClient{DB: db}, rdb, nil)
	return h, mock, mr
}

func createTestInput() *Input {
	return &Input{
		UserID:   "user-1",
		Category: "green",
		InitialData: map[string]interface{}{
			"is_manufacturing": true,
		},
		IntakeData: map[string]interface{}{
			"annual_electricity_kwh": 1000.0,
		},
		Score:          72,
		Rating:         "B",
		CarbonEstimate: 1091.76,
		Verdict:        "Strong Green Loan candidate.",
	}
}

func TestExecute_UpsertsProfile(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs(
			sqlmock.AnyArg(), // assessment id
			"user-1",
			"green",
			sqlmock.AnyArg(), // initial_data json
			sqlmock.AnyArg(), // intake_data json
			72,
			"B",
			1091.76,
			"Strong Green Loan candidate.",
			sqlmock.AnyArg(), // updated_at
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.True(t, output.Persisted)
	assert.NotEmpty(t, output.AssessmentID)
	assert.WithinDuration(t, time.Now().UTC(), output.UpdatedAt, 5*time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The latest result lands in the cache alongside the row.
	cached, err := mr.Get(models.LatestAssessmentCacheKey("user-1"))
	require.NoError(t, err)

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal([]byte(cached), &profile))
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, models.CategoryGreen, profile.Category)
	assert.Equal(t, 72, profile.Score)
	assert.Equal(t, 1091.76, profile.CarbonEstimate)
}

func TestExecute_ResubmissionGetsFreshAssessmentID(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectExec("INSERT INTO user_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_profiles").WillReturnResult(sqlmock.NewResult(0, 1))

	first, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.AssessmentID, second.AssessmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DatabaseFailure(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectExec("INSERT INTO user_profiles").
		WillReturnError(assert.AnError)

	output, err := h.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAssessmentUpsertFailed, stdErr.Code)
}

func TestExecute_CacheFailureDoesNotFailJob(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	mock.ExpectExec("INSERT INTO user_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mr.Close()

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.True(t, output.Persisted)
}

func TestExecute_MissingUserID(t *testing.T) {
	h, _, _ := newTestHandler(t)

	input := createTestInput()
	input.UserID = ""

	output, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, output)
}

func TestExecute_InvalidCategory(t *testing.T) {
	h, _, _ := newTestHandler(t)

	input := createTestInput()
	input.Category = "gold"

	output, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidCategory, stdErr.Code)
}
