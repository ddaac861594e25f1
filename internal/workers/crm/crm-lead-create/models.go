// internal/workers/crm/crm-lead-create/models.go
package crmleadcreate

import "time"

type Input struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Phone     string `json:"phone,omitempty"`
	Category  string `json:"category,omitempty"`
	Score     int    `json:"score,omitempty"`
	Rating    string `json:"rating,omitempty"`
}

type Output struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	LeadID      string    `json:"leadId,omitempty"`
	Created     bool      `json:"created"`
	CRMProvider string    `json:"crmProvider,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
