package api

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/you/swap-quoter/internal/amm"
	"github.com/you/swap-quoter/internal/chain"
	"github.com/you/swap-quoter/internal/fixedmath"
	"github.com/you/swap-quoter/internal/swap"
	"github.com/you/swap-quoter/internal/types"
)

type RateRequest struct {
	Token  string `query:"token"`
	Invert bool   `query:"invert"`
}

type RateResponse struct {
	Token string `json:"token"`
	// Rate is an 18-decimal fixed-point ratio of reference per token (or the
	// reciprocal when inverted).
	Rate string `json:"rate"`
	// USD is the display-only dollar price per token, present when the
	// configured USD pool can supply a conversion.
	USD string `json:"usd,omitempty"`
}

// handleRate serves the display spot rate for one asset against the
// reference asset. Missing or empty reserves degrade to 404, never an
// internal error: this path must not take the pricing engine down with it.
func (s *Server) handleRate(c fiber.Ctx) error {
	var req RateRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrBadQuery
	}

	sym := types.Symbol(strings.ToUpper(req.Token))
	if !s.cfg.HasAsset(sym) || string(sym) == s.cfg.Reference {
		return NewUnknownAsset(req.Token)
	}

	snap, err := s.source.Snapshot(context.Background(), common.Address{}, s.cfg.ChainAssets(), chain.Params{
		FeeBps:      s.cfg.FeeBps,
		SlippageBps: s.cfg.SlippageBps,
	})
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		return ErrSnapshotFailed
	}

	pair := snap.Reserves[sym]
	rate, ok := amm.Rate(pair.Token, pair.Reference, req.Invert)
	if !ok {
		return ErrRateUnavailable
	}

	resp := RateResponse{Token: string(sym), Rate: rate.String()}
	if usd, ok := s.usdPrice(snap, rate, req.Invert); ok {
		resp.USD = fixedmath.FormatDecimal(usd, swap.AmountDecimals)
	}
	return c.JSON(resp)
}

// usdPrice converts a reference-denominated rate into dollars through the
// configured USD pool. Unavailable reserves just drop the field.
func (s *Server) usdPrice(snap *swap.Snapshot, rate *big.Int, inverted bool) (*big.Int, bool) {
	if s.cfg.USD == "" || inverted {
		return nil, false
	}
	usdPair := snap.Reserves[types.Symbol(s.cfg.USD)]
	perRef, ok := amm.Rate(usdPair.Reference, usdPair.Token, false)
	if !ok {
		return nil, false
	}
	usd := new(big.Int).Mul(rate, perRef)
	return usd.Quo(usd, amm.RateScale), true
}
