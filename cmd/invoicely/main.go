package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/invoicely/invoicely/internal/config"
	"github.com/invoicely/invoicely/internal/invoice"
	"github.com/invoicely/invoicely/internal/logger"
	"github.com/invoicely/invoicely/internal/metrics"
	"github.com/invoicely/invoicely/internal/pdf"
	"github.com/invoicely/invoicely/internal/ratelimit"
	"github.com/invoicely/invoicely/internal/server"
	"github.com/invoicely/invoicely/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		metrics.Module,
		ratelimit.Module,

		// Functional domains
		invoice.Module,
		pdf.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
