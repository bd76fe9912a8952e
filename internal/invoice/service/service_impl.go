package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
	"github.com/invoicely/invoicely/internal/invoice/totals"
	"github.com/invoicely/invoicely/internal/token"
	"github.com/invoicely/invoicely/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// insertAttempts bounds the transparent retry on a public id collision.
const insertAttempts = 3

const (
	defaultCurrency = "USD"
	defaultLocale   = "en-US"
)

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  invoicedomain.Repository
	Hook  invoicedomain.StatusTransitionHook `optional:"true"`
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  invoicedomain.Repository
	hook  invoicedomain.StatusTransitionHook
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		repo:  p.Repo,
		hook:  p.Hook,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (invoicedomain.CreateResponse, error) {
	if err := req.Validate(); err != nil {
		return invoicedomain.CreateResponse{}, err
	}

	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	if req.Locale == "" {
		req.Locale = defaultLocale
	}

	computed := totals.Calculate(req.Items)

	editToken, err := token.GenerateEditToken()
	if err != nil {
		return invoicedomain.CreateResponse{}, fmt.Errorf("generate edit token: %w", err)
	}

	var publicID string
	for attempt := 1; attempt <= insertAttempts; attempt++ {
		publicID, err = token.GeneratePublicID()
		if err != nil {
			return invoicedomain.CreateResponse{}, fmt.Errorf("generate public id: %w", err)
		}

		inv := &invoicedomain.Invoice{
			ID:            s.genID.Generate(),
			PublicID:      publicID,
			EditTokenHash: token.HashToken(editToken),
			Status:        invoicedomain.StatusDraft,
			Currency:      req.Currency,
			Locale:        req.Locale,
			Issuer:        datatypes.NewJSONType(req.Issuer),
			Customer:      datatypes.NewJSONType(req.Customer),
			Items:         datatypes.NewJSONType(req.Items),
			Totals:        datatypes.NewJSONType(computed),
			Notes:         req.Notes,
			Terms:         req.Terms,
			IssueDate:     req.IssueDate,
			DueDate:       req.DueDate,
		}

		err = s.repo.Insert(ctx, inv)
		if err == nil {
			return invoicedomain.CreateResponse{
				PublicID:  publicID,
				EditToken: editToken,
				Totals:    computed,
			}, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			break
		}
		s.log.Warn("public id collision, retrying",
			zap.String("public_id", publicID),
			zap.Int("attempt", attempt),
		)
	}

	s.log.Error("failed to store invoice", zap.Error(err))
	return invoicedomain.CreateResponse{}, fmt.Errorf("store invoice: %w", err)
}

func (s *Service) Get(ctx context.Context, publicID string) (invoicedomain.View, error) {
	inv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return invoicedomain.View{}, err
	}
	return inv.ToView(), nil
}

// Update applies a sparse patch. The record is fetched before the token is
// checked so a missing invoice and a bad token surface distinctly. When the
// patch carries items, totals are recomputed and overwrite the stored value;
// the returned pointer is nil when items were not part of the patch.
func (s *Service) Update(ctx context.Context, publicID, editToken string, req invoicedomain.UpdateRequest) (*totals.Totals, error) {
	inv, err := s.authorize(ctx, publicID, editToken)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Status != nil && s.hook != nil {
		if err := s.hook(inv.Status, *req.Status); err != nil {
			return nil, invoicedomain.NewValidationError("status", "invalid_transition", err.Error())
		}
	}

	fields := make(map[string]any)
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Locale != nil {
		fields["locale"] = *req.Locale
	}
	if req.Issuer != nil {
		fields["issuer"] = datatypes.NewJSONType(*req.Issuer)
	}
	if req.Customer != nil {
		fields["customer"] = datatypes.NewJSONType(*req.Customer)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.Terms != nil {
		fields["terms"] = *req.Terms
	}
	if req.IssueDate != nil {
		fields["issue_date"] = *req.IssueDate
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}

	var recomputed *totals.Totals
	if req.Items != nil {
		computed := totals.Calculate(*req.Items)
		fields["items"] = datatypes.NewJSONType(*req.Items)
		fields["totals"] = datatypes.NewJSONType(computed)
		recomputed = &computed
	}

	if len(fields) == 0 {
		// Nothing to persist; a no-op patch is still a successful update.
		return nil, nil
	}

	if err := s.repo.Update(ctx, publicID, fields); err != nil {
		return nil, err
	}
	return recomputed, nil
}

func (s *Service) Delete(ctx context.Context, publicID, editToken string) error {
	if _, err := s.authorize(ctx, publicID, editToken); err != nil {
		return err
	}
	return s.repo.Delete(ctx, publicID)
}

// authorize confirms existence first, then token possession: an absent
// candidate token fails fast without hashing anything.
func (s *Service) authorize(ctx context.Context, publicID, editToken string) (*invoicedomain.Invoice, error) {
	inv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if editToken == "" {
		return nil, invoicedomain.ErrUnauthorized
	}
	if !token.Verify(editToken, inv.EditTokenHash) {
		return nil, invoicedomain.ErrUnauthorized
	}
	return inv, nil
}
