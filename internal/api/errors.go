package api

import "github.com/gofiber/fiber/v3"

// ErrBadQuery indicates the query string could not be bound.
var ErrBadQuery = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrBadSide is returned when side is neither buy nor sell.
var ErrBadSide = fiber.NewError(fiber.StatusBadRequest, "side must be buy or sell")

// ErrAmountRequired is returned when the amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmount maps an unparseable or non-positive amount to a 400.
var ErrInvalidAmount = fiber.NewError(fiber.StatusBadRequest, "invalid amount")

// ErrInvalidTrade maps a degenerate route to a 400: the pools cannot
// satisfy the request.
var ErrInvalidTrade = fiber.NewError(fiber.StatusBadRequest, "trade cannot be quoted against current reserves")

// ErrBadAccount is returned for a malformed account address.
var ErrBadAccount = fiber.NewError(fiber.StatusBadRequest, "invalid account address")

// ErrRateUnavailable signals that a spot rate cannot be derived from the
// current reserves.
var ErrRateUnavailable = fiber.NewError(fiber.StatusNotFound, "rate unavailable")

// ErrSnapshotFailed signals that on-chain state could not be read.
var ErrSnapshotFailed = fiber.NewError(fiber.StatusBadGateway, "failed to read chain state")

// NewUnknownAsset returns a 400 for a symbol absent from the configuration.
func NewUnknownAsset(sym string) error {
	return fiber.NewError(fiber.StatusBadRequest, "unknown asset: "+sym)
}
