package domain

import (
	"context"

	"github.com/invoicely/invoicely/internal/invoice/totals"
)

// Service orchestrates invoice lifecycle operations. Read is public; Update
// and Delete require possession of the edit token issued at creation.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (CreateResponse, error)
	Get(ctx context.Context, publicID string) (View, error)
	Update(ctx context.Context, publicID, editToken string, req UpdateRequest) (*totals.Totals, error)
	Delete(ctx context.Context, publicID, editToken string) error
}

// StatusTransitionHook, when configured, validates status changes on update.
// The default service runs without one: any of the known statuses may be set
// in any order.
type StatusTransitionHook func(from, to Status) error

// CreateRequest is the public creation payload.
type CreateRequest struct {
	Currency  string            `json:"currency"`
	Locale    string            `json:"locale"`
	Issuer    Contact           `json:"issuer"`
	Customer  Contact           `json:"customer"`
	Items     []totals.LineItem `json:"items"`
	Notes     string            `json:"notes"`
	Terms     string            `json:"terms"`
	IssueDate string            `json:"issueDate"`
	DueDate   string            `json:"dueDate"`
}

// CreateResponse carries the only disclosure of the edit token that will
// ever happen.
type CreateResponse struct {
	PublicID  string        `json:"publicId"`
	EditToken string        `json:"editToken"`
	Totals    totals.Totals `json:"totals"`
}

// UpdateRequest is a sparse patch: nil means the field was not submitted and
// stays untouched, a non-nil pointer sets the field (including to an empty
// value). There is deliberately no totals field; totals cannot be set by
// clients.
type UpdateRequest struct {
	Status    *Status            `json:"status"`
	Currency  *string            `json:"currency"`
	Locale    *string            `json:"locale"`
	Issuer    *Contact           `json:"issuer"`
	Customer  *Contact           `json:"customer"`
	Items     *[]totals.LineItem `json:"items"`
	Notes     *string            `json:"notes"`
	Terms     *string            `json:"terms"`
	IssueDate *string            `json:"issueDate"`
	DueDate   *string            `json:"dueDate"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateRequest) Empty() bool {
	return r.Status == nil && r.Currency == nil && r.Locale == nil &&
		r.Issuer == nil && r.Customer == nil && r.Items == nil &&
		r.Notes == nil && r.Terms == nil && r.IssueDate == nil && r.DueDate == nil
}
