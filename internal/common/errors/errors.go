// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"

	ErrCodeVariantMismatch        ErrorCode = "VARIANT_MISMATCH"
	ErrCodeInvalidCategory        ErrorCode = "INVALID_CATEGORY"
	ErrCodeIntakeValidationFailed ErrorCode = "INTAKE_VALIDATION_FAILED"

	ErrCodeCarbonEstimateFailed ErrorCode = "CARBON_ESTIMATE_FAILED"
	ErrCodeScorecardFailed      ErrorCode = "SCORECARD_FAILED"

	ErrCodeVerdictTimeout ErrorCode = "VERDICT_TIMEOUT"
	ErrCodeVerdictFailed  ErrorCode = "VERDICT_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeAssessmentUpsertFailed   ErrorCode = "ASSESSMENT_UPSERT_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"
	ErrCodeAssessmentNotFound       ErrorCode = "ASSESSMENT_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCRMCreateFailed        ErrorCode = "CRM_CREATE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewVariantMismatchError reports intake data shaped for one category while
// declaring another. Non-retryable: the caller must fix the submission.
func NewVariantMismatchError(category string, offendingFields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeVariantMismatch,
		Message:   "Intake data does not match the declared category",
		Details:   fmt.Sprintf("category: %s, offending fields: %s", category, strings.Join(offendingFields, ", ")),
		Retryable: false,
		Metadata: map[string]interface{}{
			"category":        category,
			"offendingFields": offendingFields,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCategoryError creates a non-retryable routing error.
func NewInvalidCategoryError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCategory,
		Message:   "Unknown assessment category",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntakeValidationFailedError creates a non-retryable validation error.
func NewIntakeValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntakeValidationFailed,
		Message:   "Intake data failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScorecardFailedError creates a non-retryable scoring error.
func NewScorecardFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScorecardFailed,
		Message:   "Scorecard generation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVerdictTimeoutError creates a retryable timeout for the text-generation call.
func NewVerdictTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeVerdictTimeout,
		Message:   "Verdict generation timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVerdictFailedError creates a retryable external-service error.
func NewVerdictFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVerdictFailed,
		Message:   "Verdict generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssessmentUpsertFailedError creates a retryable persistence error.
func NewAssessmentUpsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssessmentUpsertFailed,
		Message:   "Failed to persist assessment result",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Query execution failed",
		Details:   fmt.Sprintf("queryType: %s, error: %v", queryType, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Query timed out",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryTypeError creates a non-retryable query type error.
func NewInvalidQueryTypeError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryType,
		Message:   "Unknown query type",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssessmentNotFoundError creates a non-retryable lookup error.
func NewAssessmentNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssessmentNotFound,
		Message:   "No assessment found for user",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send notification",
		Details:   fmt.Sprintf("channel: %s, error: %v", channel, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMCreateFailedError creates a retryable CRM integration error.
func NewCRMCreateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMCreateFailed,
		Message:   "Failed to create CRM contact",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError creates a retryable external service error.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrorCode(strings.ToUpper(service) + "_UNAVAILABLE"),
		Message:   fmt.Sprintf("External service %s unavailable", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError creates a retryable timeout error for an external service.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrorCode(strings.ToUpper(service) + "_TIMEOUT"),
		Message:   fmt.Sprintf("Operation on %s timed out", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBusinessRuleError creates a generic non-retryable business error.
func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. BPMN Mapping & Retries
// ==========================

// BPMNErrorMapping maps internal codes to the BPMN boundary-event codes the
// process models catch. Codes without an entry pass through unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeVariantMismatch:        "VARIANT_MISMATCH",
	ErrCodeInvalidCategory:        "INVALID_CATEGORY",
	ErrCodeIntakeValidationFailed: "INTAKE_VALIDATION_FAILED",
	ErrCodeVerdictTimeout:         "VERDICT_TIMEOUT",
	ErrCodeVerdictFailed:          "VERDICT_FAILED",
	ErrCodeAssessmentUpsertFailed: "ASSESSMENT_UPSERT_FAILED",
	ErrCodeAssessmentNotFound:     "ASSESSMENT_NOT_FOUND",
}

// GetRetryCount returns the retry budget per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeAssessmentUpsertFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCRMCreateFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout:
		return 2

	case ErrCodeVerdictTimeout, ErrCodeVerdictFailed:
		return 1 // As per BPMN boundary event

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// IsRetryableErrorCode reports whether a code has a non-zero retry budget.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}
