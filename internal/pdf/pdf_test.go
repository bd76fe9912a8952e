package pdf

import (
	"context"
	"testing"
	"time"

	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
	"github.com/invoicely/invoicely/internal/invoice/totals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoice(t *testing.T) {
	view := invoicedomain.View{
		PublicID: "aB3dE5fG7hJ9",
		Status:   invoicedomain.StatusDraft,
		Currency: "USD",
		Locale:   "en-US",
		Issuer:   invoicedomain.Contact{Name: "Acme Studio", Address: "1 Main St", Email: "billing@acme.test", TaxID: "DE123456789"},
		Customer: invoicedomain.Contact{Name: "Globex", Email: "ap@globex.test"},
		Items: []totals.LineItem{
			{Description: "Design work", Qty: 10, UnitPrice: 95, TaxRate: 19},
			{Description: "Stock assets", Qty: 1, UnitPrice: 49.99},
		},
		Totals:    totals.Calculate([]totals.LineItem{{Description: "Design work", Qty: 10, UnitPrice: 95, TaxRate: 19}, {Description: "Stock assets", Qty: 1, UnitPrice: 49.99}}),
		Notes:     "Thanks for your business.",
		Terms:     "Net 30",
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	out, err := New().RenderInvoice(context.Background(), view)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderInvoice_MinimalFields(t *testing.T) {
	view := invoicedomain.View{
		PublicID: "xyzXYZ123456",
		Status:   invoicedomain.StatusIssued,
		Currency: "EUR",
		Issuer:   invoicedomain.Contact{Name: "Solo Dev"},
		Customer: invoicedomain.Contact{Name: "Client"},
		Items:    []totals.LineItem{{Description: "Work", Qty: 1, UnitPrice: 100}},
		Totals:   totals.Totals{Subtotal: 100, GrandTotal: 100},
	}

	out, err := New().RenderInvoice(context.Background(), view)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "USD 1,234.50", FormatAmount("USD", 1234.5))
	assert.Equal(t, "USD 0.00", FormatAmount("USD", 0))
	assert.Equal(t, "EUR 999.99", FormatAmount("EUR", 999.99))
	assert.Equal(t, "USD 1,000,000.00", FormatAmount("USD", 1000000))
	assert.Equal(t, "USD -50.00", FormatAmount("USD", -50))
	assert.Equal(t, "12.34", FormatAmount("", 12.34))
}
