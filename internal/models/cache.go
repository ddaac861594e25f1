package models

// LatestAssessmentCacheKey is the Redis key holding a user's most recent
// assessment result. Written on persist, read by the query worker.
func LatestAssessmentCacheKey(userID string) string {
	return "assessment:latest:" + userID
}
