package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/you/swap-quoter/internal/swap"
	"github.com/you/swap-quoter/internal/types"
)

const erc20ABI = `[
 {"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
 {"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const pairABI = `[
 {"inputs":[],"name":"getReserves","outputs":[{"name":"reserve0","type":"uint112"},{"name":"reserve1","type":"uint112"},{"name":"blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"},
 {"inputs":[],"name":"token0","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

// Node is the slice of ethclient.Client the source depends on.
type Node interface {
	Caller
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Asset binds a symbol to its token contract and its pool against the
// reference asset. The reference asset itself carries no pair.
type Asset struct {
	Symbol types.Symbol
	Token  common.Address
	Pair   common.Address
}

// Params is the pricing policy stamped onto every snapshot.
type Params struct {
	FeeBps      uint32
	SlippageBps uint32
	GasFloor    *big.Int
}

var ErrUnknownPairToken = errors.New("chain: pair token0 matches neither side")

// Source assembles swap.Snapshots from on-chain state. It caches the token0
// ordering of each pair, which is immutable, so steady-state snapshots spend
// no calls on it.
type Source struct {
	node    Node
	mc      *Multicall
	spender common.Address
	refSym  types.Symbol

	erc20 abi.ABI
	pair  abi.ABI

	ordMu  sync.RWMutex
	token0 map[common.Address]common.Address
}

func NewSource(node Node, multicallAddr, spender common.Address, reference types.Symbol) (*Source, error) {
	mc, err := NewMulticall(node, multicallAddr)
	if err != nil {
		return nil, err
	}
	e, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("bad erc20 abi: %w", err)
	}
	p, err := abi.JSON(strings.NewReader(pairABI))
	if err != nil {
		return nil, fmt.Errorf("bad pair abi: %w", err)
	}
	return &Source{
		node:    node,
		mc:      mc,
		spender: spender,
		refSym:  reference,
		erc20:   e,
		pair:    p,
		token0:  make(map[common.Address]common.Address, 8),
	}, nil
}

// Snapshot reads reserves for every asset plus the account's balances and
// allowances in a single batched call, and the native balance in one more.
// The result is one consistent view; callers re-snapshot before submitting.
func (s *Source) Snapshot(ctx context.Context, account common.Address, assets []Asset, p Params) (*swap.Snapshot, error) {
	snap := &swap.Snapshot{
		Reference:   s.refSym,
		FeeBps:      p.FeeBps,
		SlippageBps: p.SlippageBps,
		GasFloor:    p.GasFloor,
		Balances:    make(map[types.Symbol]*big.Int, len(assets)),
		Allowances:  make(map[types.Symbol]*big.Int, len(assets)),
		Reserves:    make(map[types.Symbol]types.ReservePair, len(assets)),
	}

	// Offsets into the aggregate result, per asset and field. -1 means the
	// call was not issued.
	type slots struct{ reserves, token0, balance, allowance int }
	plan := make(map[types.Symbol]*slots, len(assets))

	var calls []Call
	push := func(target common.Address, data []byte) int {
		calls = append(calls, Call{Target: target, CallData: data})
		return len(calls) - 1
	}

	for _, a := range assets {
		sl := &slots{reserves: -1, token0: -1, balance: -1, allowance: -1}
		plan[a.Symbol] = sl

		if a.Symbol != s.refSym && a.Pair != (common.Address{}) {
			data, _ := s.pair.Pack("getReserves")
			sl.reserves = push(a.Pair, data)
			if _, ok := s.cachedToken0(a.Pair); !ok {
				data, _ = s.pair.Pack("token0")
				sl.token0 = push(a.Pair, data)
			}
		}
		if a.Symbol != s.refSym && account != (common.Address{}) {
			data, _ := s.erc20.Pack("balanceOf", account)
			sl.balance = push(a.Token, data)
			data, _ = s.erc20.Pack("allowance", account, s.spender)
			sl.allowance = push(a.Token, data)
		}
	}

	var results [][]byte
	if len(calls) > 0 {
		var err error
		results, err = s.mc.Aggregate(ctx, calls)
		if err != nil {
			return nil, err
		}
	}

	for _, a := range assets {
		sl := plan[a.Symbol]
		if sl.token0 >= 0 {
			t0, err := s.decodeToken0(results[sl.token0])
			if err != nil {
				return nil, fmt.Errorf("pair %s: %w", a.Pair.Hex(), err)
			}
			s.storeToken0(a.Pair, t0)
		}
		if sl.reserves >= 0 {
			pair, err := s.orientReserves(a, results[sl.reserves])
			if err != nil {
				return nil, err
			}
			snap.Reserves[a.Symbol] = pair
		}
		if sl.balance >= 0 {
			v, err := s.decodeUint(results[sl.balance], "balanceOf")
			if err != nil {
				return nil, err
			}
			snap.Balances[a.Symbol] = v
		}
		if sl.allowance >= 0 {
			v, err := s.decodeUint(results[sl.allowance], "allowance")
			if err != nil {
				return nil, err
			}
			snap.Allowances[a.Symbol] = v
		}
	}

	if account != (common.Address{}) {
		native, err := s.node.BalanceAt(ctx, account, nil)
		if err != nil {
			return nil, fmt.Errorf("native balance: %w", err)
		}
		snap.GasBalance = native
		// The reference asset is spent natively, so its spendable balance is
		// the native balance.
		snap.Balances[s.refSym] = native
	}
	return snap, nil
}

// Reserves reads a single asset's pool, for the background feed.
func (s *Source) Reserves(ctx context.Context, a Asset) (types.ReservePair, error) {
	data, _ := s.pair.Pack("getReserves")
	calls := []Call{{Target: a.Pair, CallData: data}}

	t0, cached := s.cachedToken0(a.Pair)
	if !cached {
		d, _ := s.pair.Pack("token0")
		calls = append(calls, Call{Target: a.Pair, CallData: d})
	}

	results, err := s.mc.Aggregate(ctx, calls)
	if err != nil {
		return types.ReservePair{}, err
	}
	if !cached {
		t0, err = s.decodeToken0(results[1])
		if err != nil {
			return types.ReservePair{}, fmt.Errorf("pair %s: %w", a.Pair.Hex(), err)
		}
		s.storeToken0(a.Pair, t0)
	}
	return s.orientReserves(a, results[0])
}

// orientReserves maps the pair's (reserve0, reserve1) onto the asset's
// (reference, token) sides using the cached token0 ordering.
func (s *Source) orientReserves(a Asset, raw []byte) (types.ReservePair, error) {
	outs, err := s.pair.Unpack("getReserves", raw)
	if err != nil || len(outs) < 2 {
		return types.ReservePair{}, fmt.Errorf("decode getReserves for %s: %w", a.Pair.Hex(), err)
	}
	r0, ok0 := outs[0].(*big.Int)
	r1, ok1 := outs[1].(*big.Int)
	if !ok0 || !ok1 {
		return types.ReservePair{}, fmt.Errorf("decode getReserves for %s: unexpected types", a.Pair.Hex())
	}

	t0, ok := s.cachedToken0(a.Pair)
	if !ok {
		return types.ReservePair{}, fmt.Errorf("pair %s: token0 unknown", a.Pair.Hex())
	}
	switch t0 {
	case a.Token:
		return types.ReservePair{Token: r0, Reference: r1}, nil
	default:
		return types.ReservePair{Token: r1, Reference: r0}, nil
	}
}

func (s *Source) decodeToken0(raw []byte) (common.Address, error) {
	outs, err := s.pair.Unpack("token0", raw)
	if err != nil || len(outs) == 0 {
		return common.Address{}, fmt.Errorf("decode token0: %w", err)
	}
	addr, ok := outs[0].(common.Address)
	if !ok {
		return common.Address{}, ErrUnknownPairToken
	}
	return addr, nil
}

func (s *Source) decodeUint(raw []byte, method string) (*big.Int, error) {
	outs, err := s.erc20.Unpack(method, raw)
	if err != nil || len(outs) == 0 {
		return nil, fmt.Errorf("decode %s: %w", method, err)
	}
	v, ok := outs[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decode %s: unexpected type", method)
	}
	return v, nil
}

func (s *Source) cachedToken0(pair common.Address) (common.Address, bool) {
	s.ordMu.RLock()
	defer s.ordMu.RUnlock()
	t0, ok := s.token0[pair]
	return t0, ok
}

func (s *Source) storeToken0(pair, t0 common.Address) {
	s.ordMu.Lock()
	s.token0[pair] = t0
	s.ordMu.Unlock()
}
