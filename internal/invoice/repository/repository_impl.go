package repository

import (
	"context"
	"errors"

	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// Provide builds the gorm-backed invoice repository.
func Provide(db *gorm.DB) invoicedomain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, inv *invoicedomain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repo) FindByPublicID(ctx context.Context, publicID string) (*invoicedomain.Invoice, error) {
	var row invoicedomain.Invoice
	err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoicedomain.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) Update(ctx context.Context, publicID string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("public_id = ?", publicID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invoicedomain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, publicID string) error {
	res := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&invoicedomain.Invoice{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invoicedomain.ErrNotFound
	}
	return nil
}
