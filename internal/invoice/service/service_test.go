package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
	"github.com/invoicely/invoicely/internal/invoice/repository"
	"github.com/invoicely/invoicely/internal/invoice/totals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, hook invoicedomain.StatusTransitionHook) invoicedomain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&invoicedomain.Invoice{}); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	return NewService(ServiceParam{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(db),
		Hook:  hook,
	})
}

func validCreateRequest() invoicedomain.CreateRequest {
	return invoicedomain.CreateRequest{
		Issuer:   invoicedomain.Contact{Name: "Acme Studio", Email: "billing@acme.test"},
		Customer: invoicedomain.Contact{Name: "Globex Inc"},
		Items: []totals.LineItem{
			{Description: "Design work", Qty: 10, UnitPrice: 100, TaxRate: 10},
			{Description: "Hosting", Qty: 1, UnitPrice: 50},
		},
		Notes:     "Thanks for your business",
		IssueDate: "2026-01-10",
		DueDate:   "2026-02-10",
	}
}

func TestCreate_IssuesCredentialsAndTotals(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	assert.Len(t, resp.PublicID, 12)
	assert.Len(t, resp.EditToken, 32)
	assert.Equal(t, 1050.00, resp.Totals.Subtotal)
	assert.Equal(t, 100.00, resp.Totals.TaxTotal)
	assert.Equal(t, 0.00, resp.Totals.DiscountTotal)
	assert.Equal(t, 1150.00, resp.Totals.GrandTotal)

	view, err := svc.Get(ctx, resp.PublicID)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusDraft, view.Status)
	assert.Equal(t, "USD", view.Currency)
	assert.Equal(t, "en-US", view.Locale)
	assert.Equal(t, "Acme Studio", view.Issuer.Name)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, resp.Totals, view.Totals)
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newTestService(t, nil)

	req := validCreateRequest()
	req.Items = nil

	_, err := svc.Create(context.Background(), req)
	var vErr *invoicedomain.ValidationErrors
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Errors)
}

func TestCreate_RejectsBadItemValues(t *testing.T) {
	svc := newTestService(t, nil)

	req := validCreateRequest()
	req.Items = []totals.LineItem{
		{Description: "", Qty: 0, UnitPrice: -1, TaxRate: 150, Discount: -5},
	}

	_, err := svc.Create(context.Background(), req)
	var vErr *invoicedomain.ValidationErrors
	require.ErrorAs(t, err, &vErr)
	assert.GreaterOrEqual(t, len(vErr.Errors), 5)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Get(context.Background(), "missing000ab")
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestUpdate_MissingInvoiceBeforeTokenCheck(t *testing.T) {
	svc := newTestService(t, nil)

	notes := "late fee applies"
	_, err := svc.Update(context.Background(), "missing000ab", "not-a-real-token", invoicedomain.UpdateRequest{Notes: &notes})
	// Existence is reported even when the token is wrong.
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestUpdate_WrongToken(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	notes := "updated"
	_, err = svc.Update(ctx, resp.PublicID, "wrong-token", invoicedomain.UpdateRequest{Notes: &notes})
	assert.ErrorIs(t, err, invoicedomain.ErrUnauthorized)

	_, err = svc.Update(ctx, resp.PublicID, "", invoicedomain.UpdateRequest{Notes: &notes})
	assert.ErrorIs(t, err, invoicedomain.ErrUnauthorized)
}

func TestUpdate_RecomputesTotalsWhenItemsChange(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	items := []totals.LineItem{
		{Description: "Consulting", Qty: 2, UnitPrice: 50, TaxRate: 8, Discount: 20},
	}
	recomputed, err := svc.Update(ctx, resp.PublicID, resp.EditToken, invoicedomain.UpdateRequest{Items: &items})
	require.NoError(t, err)
	require.NotNil(t, recomputed)

	assert.Equal(t, 100.00, recomputed.Subtotal)
	assert.Equal(t, 20.00, recomputed.DiscountTotal)
	assert.Equal(t, 6.40, recomputed.TaxTotal)
	assert.Equal(t, 86.40, recomputed.GrandTotal)

	view, err := svc.Get(ctx, resp.PublicID)
	require.NoError(t, err)
	assert.Equal(t, *recomputed, view.Totals)
	assert.Len(t, view.Items, 1)
}

func TestUpdate_SparsePatchLeavesOtherFieldsAlone(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	notes := "wire transfer only"
	recomputed, err := svc.Update(ctx, resp.PublicID, resp.EditToken, invoicedomain.UpdateRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Nil(t, recomputed)

	view, err := svc.Get(ctx, resp.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "wire transfer only", view.Notes)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, resp.Totals, view.Totals)
	assert.Equal(t, "2026-02-10", view.DueDate)
}

func TestUpdate_EmptyPatchIsNoOp(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	recomputed, err := svc.Update(ctx, resp.PublicID, resp.EditToken, invoicedomain.UpdateRequest{})
	assert.NoError(t, err)
	assert.Nil(t, recomputed)
}

func TestUpdate_StatusChange(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	issued := invoicedomain.StatusIssued
	_, err = svc.Update(ctx, resp.PublicID, resp.EditToken, invoicedomain.UpdateRequest{Status: &issued})
	require.NoError(t, err)

	view, err := svc.Get(ctx, resp.PublicID)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusIssued, view.Status)

	unknown := invoicedomain.Status("archived")
	_, err = svc.Update(ctx, resp.PublicID, resp.EditToken, invoicedomain.UpdateRequest{Status: &unknown})
	var vErr *invoicedomain.ValidationErrors
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdate_TransitionHook(t *testing.T) {
	hook := func(from, to invoicedomain.Status) error {
		if from == invoicedomain.StatusPaid {
			return errors.New("paid invoices are final")
		}
		return nil
	}
	svc := newTestService(t, hook)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	paid := invoicedomain.StatusPaid
	_, err = svc.Update(ctx, resp.PublicID, resp.EditToken, invoicedomain.UpdateRequest{Status: &paid})
	require.NoError(t, err)

	draft := invoicedomain.StatusDraft
	_, err = svc.Update(ctx, resp.PublicID, resp.EditToken, invoicedomain.UpdateRequest{Status: &draft})
	var vErr *invoicedomain.ValidationErrors
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Errors[0].Field)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(ctx, resp.PublicID, "wrong-token")
	assert.ErrorIs(t, err, invoicedomain.ErrUnauthorized)

	err = svc.Delete(ctx, resp.PublicID, resp.EditToken)
	require.NoError(t, err)

	_, err = svc.Get(ctx, resp.PublicID)
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)

	err = svc.Delete(ctx, resp.PublicID, resp.EditToken)
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestCreate_PublicIDsAreUnique(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		resp, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.False(t, seen[resp.PublicID])
		seen[resp.PublicID] = true
	}
}
