package invoice

import (
	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
	"github.com/invoicely/invoicely/internal/invoice/repository"
	"github.com/invoicely/invoicely/internal/invoice/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&invoicedomain.Invoice{})
}
