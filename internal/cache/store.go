// Package cache keeps the latest reserve snapshot per asset in Redis so a
// restarting quoter, or a reader that cannot reach the RPC node, still has a
// recent view of every pool.
package cache

import (
	"context"
	"math/big"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/you/swap-quoter/internal/types"
)

type Options struct {
	Addr     string
	DB       int
	Username string
	Password string

	// SnapNS prefixes per-asset snapshot hashes, ActiveKey names the ZSET
	// indexing which assets have fresh data.
	SnapNS    string
	ActiveKey string
}

type Store struct {
	rdb       *redis.Client
	snapNS    string
	activeKey string
}

func NewStore(o Options) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		DB:       o.DB,
		Username: o.Username,
		Password: o.Password,
	})
	snapNS := o.SnapNS
	if snapNS == "" {
		snapNS = "reserve:snap:"
	}
	active := o.ActiveKey
	if active == "" {
		active = "reserve:active"
	}
	return &Store{rdb: rdb, snapNS: snapNS, activeKey: active}
}

func (s *Store) Close() error { return s.rdb.Close() }

// PutReserves upserts the snapshot hash reserve:snap:<SYMBOL> and bumps the
// asset in the active index, scored by the snapshot timestamp.
func (s *Store) PutReserves(ctx context.Context, sym types.Symbol, pair types.ReservePair, tsMs int64) error {
	key := s.snapNS + string(sym)
	if err := s.rdb.HSet(ctx, key, map[string]interface{}{
		"reference": pair.Reference.String(),
		"token":     pair.Token.String(),
		"ts_ms":     tsMs,
	}).Err(); err != nil {
		return err
	}
	return s.rdb.ZAdd(ctx, s.activeKey, redis.Z{
		Score: float64(tsMs), Member: string(sym),
	}).Err()
}

// Reserves reads the cached snapshot for one asset. A missing key surfaces
// as redis.Nil so callers can tell "never seen" from a transport error.
func (s *Store) Reserves(ctx context.Context, sym types.Symbol) (types.ReservePair, int64, error) {
	m, err := s.rdb.HGetAll(ctx, s.snapNS+string(sym)).Result()
	if err != nil {
		return types.ReservePair{}, 0, err
	}
	if len(m) == 0 {
		return types.ReservePair{}, 0, redis.Nil
	}

	ref, okRef := new(big.Int).SetString(m["reference"], 10)
	tok, okTok := new(big.Int).SetString(m["token"], 10)
	if !okRef || !okTok {
		return types.ReservePair{}, 0, redis.Nil
	}
	tsMs, _ := strconv.ParseInt(m["ts_ms"], 10, 64)
	return types.ReservePair{Reference: ref, Token: tok}, tsMs, nil
}

// ActiveSymbols lists assets whose snapshot is newer than sinceMs.
func (s *Store) ActiveSymbols(ctx context.Context, sinceMs int64) ([]string, error) {
	return s.rdb.ZRangeByScore(ctx, s.activeKey, &redis.ZRangeBy{
		Min: strconv.FormatInt(sinceMs, 10),
		Max: "+inf",
	}).Result()
}
