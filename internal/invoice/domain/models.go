// Package domain contains the invoice model and service contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invoicely/invoicely/internal/invoice/totals"
	"gorm.io/datatypes"
)

// Status represents invoice lifecycle states. Any status may be set by an
// authorized update in any order; there is no enforced transition graph.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusIssued    Status = "issued"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusCancelled:
		return true
	default:
		return false
	}
}

// Contact is an issuer or customer block. TaxID is only meaningful on the
// issuer side.
type Contact struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
}

// Invoice is the persisted invoice row.
//
// PublicID is the shareable lookup key; it is not secret. EditTokenHash is
// the one-way digest of the owner capability, set exactly once at creation
// and never returned. Totals are derived from Items and overwritten
// server-side whenever Items change.
type Invoice struct {
	ID            snowflake.ID                            `gorm:"primaryKey" json:"-"`
	PublicID      string                                  `gorm:"column:public_id;type:text;not null;uniqueIndex" json:"publicId"`
	EditTokenHash string                                  `gorm:"column:edit_token_hash;type:text;not null" json:"-"`
	Status        Status                                  `gorm:"type:text;not null;default:'draft'" json:"status"`
	Currency      string                                  `gorm:"type:text;not null" json:"currency"`
	Locale        string                                  `gorm:"type:text;not null" json:"locale"`
	Issuer        datatypes.JSONType[Contact]             `gorm:"not null" json:"issuer"`
	Customer      datatypes.JSONType[Contact]             `gorm:"not null" json:"customer"`
	Items         datatypes.JSONType[[]totals.LineItem]   `gorm:"not null" json:"items"`
	Totals        datatypes.JSONType[totals.Totals]       `gorm:"not null" json:"totals"`
	Notes         string                                  `gorm:"type:text" json:"notes,omitempty"`
	Terms         string                                  `gorm:"type:text" json:"terms,omitempty"`
	IssueDate     string                                  `gorm:"column:issue_date;type:text" json:"issueDate,omitempty"`
	DueDate       string                                  `gorm:"column:due_date;type:text" json:"dueDate,omitempty"`
	CreatedAt     time.Time                               `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time                               `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// View is the public projection of an invoice: every stored field except the
// internal row id and the edit token hash.
type View struct {
	PublicID  string           `json:"publicId"`
	Status    Status           `json:"status"`
	Currency  string           `json:"currency"`
	Locale    string           `json:"locale"`
	Issuer    Contact          `json:"issuer"`
	Customer  Contact          `json:"customer"`
	Items     []totals.LineItem `json:"items"`
	Totals    totals.Totals    `json:"totals"`
	Notes     string           `json:"notes,omitempty"`
	Terms     string           `json:"terms,omitempty"`
	IssueDate string           `json:"issueDate,omitempty"`
	DueDate   string           `json:"dueDate,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ToView projects the invoice for public consumption.
func (inv *Invoice) ToView() View {
	return View{
		PublicID:  inv.PublicID,
		Status:    inv.Status,
		Currency:  inv.Currency,
		Locale:    inv.Locale,
		Issuer:    inv.Issuer.Data(),
		Customer:  inv.Customer.Data(),
		Items:     inv.Items.Data(),
		Totals:    inv.Totals.Data(),
		Notes:     inv.Notes,
		Terms:     inv.Terms,
		IssueDate: inv.IssueDate,
		DueDate:   inv.DueDate,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}
