package domain

import (
	"fmt"
	"strings"

	"github.com/invoicely/invoicely/internal/invoice/totals"
)

// Validate checks the creation payload against the data-model constraints.
func (r CreateRequest) Validate() error {
	v := &ValidationErrors{}

	if r.Currency != "" && len(r.Currency) != 3 {
		v.add("currency", "invalid_currency", "currency must be a 3-letter code")
	}
	validateContact(v, "issuer", r.Issuer)
	validateContact(v, "customer", r.Customer)
	validateItems(v, "items", r.Items)

	return v.orNil()
}

// Validate checks whichever fields the sparse patch carries.
func (r UpdateRequest) Validate() error {
	v := &ValidationErrors{}

	if r.Status != nil && !ValidStatus(*r.Status) {
		v.add("status", "invalid_status", "status must be one of draft, issued, paid, cancelled")
	}
	if r.Currency != nil && len(*r.Currency) != 3 {
		v.add("currency", "invalid_currency", "currency must be a 3-letter code")
	}
	if r.Issuer != nil {
		validateContact(v, "issuer", *r.Issuer)
	}
	if r.Customer != nil {
		validateContact(v, "customer", *r.Customer)
	}
	if r.Items != nil {
		validateItems(v, "items", *r.Items)
	}

	return v.orNil()
}

func validateContact(v *ValidationErrors, field string, c Contact) {
	if strings.TrimSpace(c.Name) == "" {
		v.add(field+".name", "required", "name is required")
	}
	if c.Email != "" && !looksLikeEmail(c.Email) {
		v.add(field+".email", "invalid_email", "invalid email address")
	}
}

func validateItems(v *ValidationErrors, field string, items []totals.LineItem) {
	if len(items) == 0 {
		v.add(field, "required", "at least one item is required")
		return
	}
	for i, item := range items {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(item.Description) == "" {
			v.add(prefix+".description", "required", "description is required")
		}
		if item.Qty <= 0 {
			v.add(prefix+".qty", "invalid_qty", "qty must be positive")
		}
		if item.UnitPrice < 0 {
			v.add(prefix+".unitPrice", "invalid_unit_price", "unitPrice must not be negative")
		}
		if item.TaxRate < 0 || item.TaxRate > 100 {
			v.add(prefix+".taxRate", "invalid_tax_rate", "taxRate must be between 0 and 100")
		}
		if item.Discount < 0 || item.Discount > 100 {
			v.add(prefix+".discount", "invalid_discount", "discount must be between 0 and 100")
		}
	}
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}
