// Package api exposes the quoting engine over HTTP. Handlers snapshot chain
// state, run the validator, and translate the error taxonomy into status
// codes and response kinds; all pricing stays in the engine.
package api

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/you/swap-quoter/internal/chain"
	"github.com/you/swap-quoter/internal/config"
	"github.com/you/swap-quoter/internal/swap"
)

// SnapshotSource abstracts chain.Source so handlers can be tested against a
// canned snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context, account common.Address, assets []chain.Asset, p chain.Params) (*swap.Snapshot, error)
}

type Server struct {
	cfg       *config.Config
	log       *zap.Logger
	source    SnapshotSource
	validator *swap.Validator
	app       *fiber.App
}

func New(cfg *config.Config, source SnapshotSource, log *zap.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log,
		source:    source,
		validator: swap.NewValidator(log),
		app:       fiber.New(),
	}

	s.app.Get("/healthz", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	s.app.Get("/v1/quote", s.handleQuote)
	s.app.Get("/v1/rate", s.handleRate)

	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen() error {
	s.log.Info("api server starting", zap.String("addr", s.cfg.API.ListenAddr))
	return s.app.Listen(s.cfg.API.ListenAddr)
}

func (s *Server) Shutdown() error { return s.app.Shutdown() }
