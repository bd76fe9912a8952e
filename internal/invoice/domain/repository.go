package domain

import "context"

// Repository abstracts the keyed record store for invoices. Implementations
// provide per-key last-write-wins semantics; no version checking happens at
// this layer.
type Repository interface {
	Insert(ctx context.Context, inv *Invoice) error
	FindByPublicID(ctx context.Context, publicID string) (*Invoice, error)
	// Update persists only the given columns. Returns ErrNotFound when the
	// row disappeared between fetch and write.
	Update(ctx context.Context, publicID string, fields map[string]any) error
	Delete(ctx context.Context, publicID string) error
}
