package api

import (
	"context"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/you/swap-quoter/internal/chain"
	"github.com/you/swap-quoter/internal/metrics"
	"github.com/you/swap-quoter/internal/swap"
	"github.com/you/swap-quoter/internal/types"
)

type QuoteRequest struct {
	Side    string `query:"side"`
	Token   string `query:"token"`
	Counter string `query:"counter"`
	Amount  string `query:"amount"`
	Account string `query:"account"`
}

type QuoteResponse struct {
	Side    string      `json:"side"`
	Token   string      `json:"token"`
	Counter string      `json:"counter"`
	Input   string      `json:"input"`
	Output  string      `json:"output"`
	Limit   string      `json:"limit"`
	Valid   bool        `json:"valid"`
	Errors  []swap.Kind `json:"errors,omitempty"`
}

func (s *Server) handleQuote(c fiber.Ctx) error {
	started := time.Now()
	defer func() { metrics.QuoteLatency.Observe(time.Since(started).Seconds()) }()

	var req QuoteRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrBadQuery
	}

	dir, err := parseSide(req.Side)
	if err != nil {
		return err
	}
	if req.Amount == "" {
		return ErrAmountRequired
	}

	target := types.Symbol(strings.ToUpper(req.Token))
	counter := types.Symbol(strings.ToUpper(req.Counter))
	if counter == "" {
		counter = types.Symbol(s.cfg.Reference)
	}
	if !s.cfg.HasAsset(target) {
		return NewUnknownAsset(string(target))
	}
	if !s.cfg.HasAsset(counter) {
		return NewUnknownAsset(string(counter))
	}

	var account common.Address
	if req.Account != "" {
		if !common.IsHexAddress(req.Account) {
			return ErrBadAccount
		}
		account = common.HexToAddress(req.Account)
	}

	snap, err := s.source.Snapshot(context.Background(), account, s.cfg.ChainAssets(), chain.Params{
		FeeBps:      s.cfg.FeeBps,
		SlippageBps: s.cfg.SlippageBps,
		GasFloor:    s.cfg.GasFloor(),
	})
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		return ErrSnapshotFailed
	}

	metrics.QuoteRequests.WithLabelValues(string(dir)).Inc()

	var quote *swap.Quote
	if dir == types.Buy {
		quote, err = s.validator.ValidateBuy(req.Amount, target, counter, snap)
	} else {
		quote, err = s.validator.ValidateSell(req.Amount, target, counter, snap)
	}
	if err != nil {
		kind := swap.ErrorKind(err)
		metrics.ValidationErrors.WithLabelValues(string(kind)).Inc()
		switch kind {
		case swap.KindInvalidAmount:
			return ErrInvalidAmount
		default:
			return ErrInvalidTrade
		}
	}
	for _, k := range quote.Kinds {
		metrics.ValidationErrors.WithLabelValues(string(k)).Inc()
	}

	return c.JSON(QuoteResponse{
		Side:    string(quote.Direction),
		Token:   string(quote.Target),
		Counter: string(quote.Counter),
		Input:   quote.Input.String(),
		Output:  quote.Output.String(),
		Limit:   quote.Limit.String(),
		Valid:   quote.Valid(),
		Errors:  quote.Kinds,
	})
}

func parseSide(side string) (types.Direction, error) {
	switch strings.ToLower(side) {
	case "buy":
		return types.Buy, nil
	case "sell":
		return types.Sell, nil
	default:
		return "", ErrBadSide
	}
}
