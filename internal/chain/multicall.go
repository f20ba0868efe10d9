// Package chain reads the on-chain state a validation pass needs: pool
// reserves, token balances and allowances, batched through Multicall so one
// snapshot is one RPC round trip.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const multicallABI = `[
 {"inputs":[{"components":[{"name":"target","type":"address"},{"name":"callData","type":"bytes"}],"name":"calls","type":"tuple[]"}],"name":"aggregate","outputs":[{"name":"blockNumber","type":"uint256"},{"name":"returnData","type":"bytes[]"}],"stateMutability":"view","type":"function"}
]`

// Caller is the slice of the Ethereum client the package needs. Tests
// substitute an in-memory fake.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Call is one target/payload pair inside an aggregate. The field names
// mirror the ABI tuple components so packing resolves them by reflection.
type Call struct {
	Target   common.Address
	CallData []byte
}

type Multicall struct {
	caller Caller
	addr   common.Address
	abi    abi.ABI
}

func NewMulticall(caller Caller, addr common.Address) (*Multicall, error) {
	parsed, err := abi.JSON(strings.NewReader(multicallABI))
	if err != nil {
		return nil, fmt.Errorf("bad multicall abi: %w", err)
	}
	return &Multicall{caller: caller, addr: addr, abi: parsed}, nil
}

// Aggregate executes every call in one eth_call against the Multicall
// contract and returns the raw return data in call order.
func (m *Multicall) Aggregate(ctx context.Context, calls []Call) ([][]byte, error) {
	payload, err := m.abi.Pack("aggregate", calls)
	if err != nil {
		return nil, fmt.Errorf("pack aggregate: %w", err)
	}

	raw, err := m.caller.CallContract(ctx, ethereum.CallMsg{To: &m.addr, Data: payload}, nil)
	if err != nil {
		return nil, fmt.Errorf("call aggregate: %w", err)
	}

	var decoded struct {
		BlockNumber *big.Int
		ReturnData  [][]byte
	}
	if err := m.abi.UnpackIntoInterface(&decoded, "aggregate", raw); err != nil {
		return nil, fmt.Errorf("unpack aggregate: %w", err)
	}
	if len(decoded.ReturnData) != len(calls) {
		return nil, fmt.Errorf("aggregate returned %d results for %d calls", len(decoded.ReturnData), len(calls))
	}
	return decoded.ReturnData, nil
}
