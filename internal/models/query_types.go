package models

// QueryType identifies a registered read query in the query-assessment
// worker. New query types must be added to the worker's registry.
type QueryType string

const (
	QueryTypeLatestAssessment QueryType = "latest-assessment"
	QueryTypeUserProfile      QueryType = "user-profile"
)
