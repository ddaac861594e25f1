// internal/workers/crm/crm-lead-create/handler_test.go
package crmleadcreate

import (
	"context"
	"testing"

	"greenbridge-workers/internal/common/errors"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/common/zoho"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCRM struct {
	createFunc func(ctx context.Context, lead *zoho.Lead) (string, error)
	searchFunc func(ctx context.Context, email string) ([]zoho.Lead, error)
	updateFunc func(ctx context.Context, leadID string, lead *zoho.Lead) error

	created []zoho.Lead
	updated map[string]zoho.Lead
}

func (m *mockCRM) CreateLead(ctx context.Context, lead *zoho.Lead) (string, error) {
	m.created = append(m.created, *lead)
	if m.createFunc != nil {
		return m.createFunc(ctx, lead)
	}
	return "lead-1", nil
}

func (m *mockCRM) SearchLeads(ctx context.Context, email string) ([]zoho.Lead, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockCRM) UpdateLead(ctx context.Context, leadID string, lead *zoho.Lead) error {
	if m.updated == nil {
		m.updated = make(map[string]zoho.Lead)
	}
	m.updated[leadID] = *lead
	if m.updateFunc != nil {
		return m.updateFunc(ctx, leadID, lead)
	}
	return nil
}

func newTestHandler(t *testing.T, crm CRMService) *Handler {
	cfg := LoadConfig()
	h := NewHandler(cfg, logger.NewTestLogger(t))
	h.crm = crm
	return h
}

func createTestInput() *Input {
	return &Input{
		UserID:    "user-1",
		Email:     "owner@sme.example",
		FirstName: "Asha",
		LastName:  "Patel",
		Company:   "Patel Textiles",
		Phone:     "+919876543210",
		Category:  "green",
		Score:     72,
		Rating:    "B",
	}
}

func TestExecute_CreatesLead(t *testing.T) {
	crm := &mockCRM{}
	h := newTestHandler(t, crm)

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.True(t, output.Created)
	assert.Equal(t, "lead-1", output.LeadID)
	assert.Equal(t, "zoho", output.CRMProvider)

	require.Len(t, crm.created, 1)
	lead := crm.created[0]
	assert.Equal(t, "owner@sme.example", lead.Email)
	assert.Equal(t, "Patel Textiles", lead.Company)
	assert.Equal(t, "GreenBridge Assessment", lead.Source)
	assert.Contains(t, lead.Description, "category GREEN")
	assert.Contains(t, lead.Description, "score 72/100")
}

func TestExecute_UpdatesExistingLead(t *testing.T) {
	crm := &mockCRM{
		searchFunc: func(ctx context.Context, email string) ([]zoho.Lead, error) {
			return []zoho.Lead{{ID: "lead-9", Email: email}}, nil
		},
	}
	h := newTestHandler(t, crm)

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.False(t, output.Created)
	assert.Equal(t, "lead-9", output.LeadID)
	assert.Empty(t, crm.created)
	assert.Contains(t, crm.updated, "lead-9")
}

func TestExecute_SearchFailureFallsBackToCreate(t *testing.T) {
	crm := &mockCRM{
		searchFunc: func(ctx context.Context, email string) ([]zoho.Lead, error) {
			return nil, assert.AnError
		},
	}
	h := newTestHandler(t, crm)

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.True(t, output.Created)
	require.Len(t, crm.created, 1)
}

func TestExecute_CreateFailure(t *testing.T) {
	crm := &mockCRM{
		createFunc: func(ctx context.Context, lead *zoho.Lead) (string, error) {
			return "", assert.AnError
		},
	}
	h := newTestHandler(t, crm)

	output, err := h.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCRMCreateFailed, stdErr.Code)
}

func TestExecute_MissingEmail(t *testing.T) {
	h := newTestHandler(t, &mockCRM{})

	input := createTestInput()
	input.Email = ""

	output, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, output)
}

func TestExecute_DisabledWorker(t *testing.T) {
	cfg := LoadConfig()
	cfg.Enabled = false
	h := NewHandler(cfg, logger.NewTestLogger(t))
	crm := &mockCRM{}
	h.crm = crm

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.False(t, output.Success)
	assert.Empty(t, crm.created)
}

func TestBuildLead_LastNameFallback(t *testing.T) {
	h := newTestHandler(t, &mockCRM{})

	input := createTestInput()
	input.LastName = ""

	lead := h.buildLead(input)
	assert.Equal(t, "Patel Textiles", lead.LastName)
}
