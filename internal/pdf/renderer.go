// Package pdf renders an invoice into a printable document.
package pdf

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
)

// Renderer builds invoice PDFs with maroto. It is constructed explicitly and
// injected; there is no lazily-initialized global document engine.
type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

// RenderInvoice produces the PDF bytes for the given public invoice view.
// The document reflects exactly the data a public read returns.
func (r *Renderer) RenderInvoice(ctx context.Context, view invoicedomain.View) ([]byte, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(8, "INVOICE", props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "#"+view.PublicID, props.Text{
			Size:  10,
			Align: align.Right,
			Top:   6,
		}),
	)

	m.AddRow(8,
		text.NewCol(12, "Status: "+string(view.Status), props.Text{Size: 9}),
	)

	// Address blocks
	m.AddRow(36,
		col.New(6).Add(contactLines("From", view.Issuer, true)...),
		col.New(6).Add(contactLines("Bill to", view.Customer, false)...),
	)

	m.AddRow(14,
		col.New(6).Add(
			text.New("Issue date: "+orDash(view.IssueDate), props.Text{Size: 9}),
			text.New("Due date: "+orDash(view.DueDate), props.Text{Size: 9, Top: 5}),
		),
		col.New(6),
	)

	// Items table
	m.AddRow(8,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range view.Items {
		m.AddRow(8,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, trimQty(item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatAmount(view.Currency, item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatAmount(view.Currency, item.Qty*item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals block
	m.AddRow(8,
		col.New(7),
		text.NewCol(3, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, FormatAmount(view.Currency, view.Totals.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(7),
		text.NewCol(3, "Discount", props.Text{Size: 9}),
		text.NewCol(2, FormatAmount(view.Currency, view.Totals.DiscountTotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(7),
		text.NewCol(3, "Tax", props.Text{Size: 9}),
		text.NewCol(2, FormatAmount(view.Currency, view.Totals.TaxTotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, FormatAmount(view.Currency, view.Totals.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if view.Notes != "" {
		m.AddRow(16,
			col.New(12).Add(
				text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
				text.New(view.Notes, props.Text{Size: 9, Top: 5}),
			),
		)
	}
	if view.Terms != "" {
		m.AddRow(16,
			col.New(12).Add(
				text.New("Terms", props.Text{Style: fontstyle.Bold, Size: 9}),
				text.New(view.Terms, props.Text{Size: 9, Top: 5}),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// contactLines stacks the non-empty fields of a contact block.
func contactLines(title string, c invoicedomain.Contact, issuer bool) []core.Component {
	lines := []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: &props.Color{Red: 107, Green: 114, Blue: 128}}),
		text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
	}
	top := 10.0
	for _, line := range []string{c.Address, c.Email, c.Phone} {
		if line == "" {
			continue
		}
		lines = append(lines, text.New(line, props.Text{Size: 9, Top: top}))
		top += 5
	}
	if issuer && c.TaxID != "" {
		lines = append(lines, text.New("Tax ID: "+c.TaxID, props.Text{Size: 9, Top: top}))
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// trimQty renders whole quantities without a trailing ".00".
func trimQty(q float64) string {
	if q == math.Trunc(q) {
		return strconv.FormatFloat(q, 'f', 0, 64)
	}
	return strconv.FormatFloat(q, 'f', 2, 64)
}
