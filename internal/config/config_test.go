package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/swap-quoter/internal/types"
)

const sampleYAML = `
reference: WETH
usd: USDC
assets:
  - symbol: WETH
    address: 0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2
  - symbol: SOCKS
    address: 0x23b608675a2b2fb1890d3abbd85c5775c51691d5
    pair: 0x22d8432cc7aa4f8712a655fc4cdfb1baec29fca9
chain:
  rpc_http: http://localhost:8545
  multicall: 0x5ba1e12693dc8f9c48aad8770482f4739beed696
  spender: 0x7a250d5630b4cf539739df2c5dacb4c659f2488d
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, uint32(30), c.FeeBps)
	assert.Equal(t, uint32(200), c.SlippageBps)
	assert.Equal(t, "10000000000000000", c.GasFloorWei)
	assert.Equal(t, 3*time.Second, c.RefreshInterval())
	assert.Equal(t, ":8080", c.API.ListenAddr)
	assert.Equal(t, "10000000000000000", c.GasFloor().String())
}

func TestLoadChecksumsAddresses(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", c.Assets[0].Address)
	assert.Equal(t, "0x23B608675a2B2fB1890d3ABBd85c5775c51691d5", c.Assets[1].Address)
	assert.Equal(t, "0x5BA1e12693Dc8F9c48aAD8770482f4739bEeD696", c.Chain.Multicall)
	assert.Equal(t, "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D", c.Chain.Spender)
}

func TestLoadRejectsBadChecksum(t *testing.T) {
	// A mixed-case address with one letter flipped.
	body := `
reference: WETH
assets:
  - symbol: WETH
    address: 0xc02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2
chain:
  multicall: 0x5ba1e12693dc8f9c48aad8770482f4739beed696
  spender: 0x7a250d5630b4cf539739df2c5dacb4c659f2488d
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestLoadRequiresReferenceInAssets(t *testing.T) {
	body := `
reference: WETH
assets:
  - symbol: SOCKS
    address: 0x23b608675a2b2fb1890d3abbd85c5775c51691d5
    pair: 0x22d8432cc7aa4f8712a655fc4cdfb1baec29fca9
chain:
  multicall: 0x5ba1e12693dc8f9c48aad8770482f4739beed696
  spender: 0x7a250d5630b4cf539739df2c5dacb4c659f2488d
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing from assets")
}

func TestLoadRequiresPairForTokens(t *testing.T) {
	body := `
reference: WETH
assets:
  - symbol: WETH
    address: 0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2
  - symbol: SOCKS
    address: 0x23b608675a2b2fb1890d3abbd85c5775c51691d5
chain:
  multicall: 0x5ba1e12693dc8f9c48aad8770482f4739beed696
  spender: 0x7a250d5630b4cf539739df2c5dacb4c659f2488d
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pair")
}

func TestHasAssetAndChainAssets(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.True(t, c.HasAsset(types.Symbol("SOCKS")))
	assert.False(t, c.HasAsset(types.Symbol("NOPE")))

	assets := c.ChainAssets()
	require.Len(t, assets, 2)
	assert.Equal(t, types.Symbol("WETH"), assets[0].Symbol)
	assert.Equal(t, "0x23B608675a2B2fB1890d3ABBd85c5775c51691d5", assets[1].Token.Hex())
}

func TestNormalizeAddress(t *testing.T) {
	cases := []struct {
		in, want, wantErr string
	}{
		{in: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", want: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"},
		{in: "0XC02AAA39B223FE8D0A0E5C4F27EAD9083C756CC2", want: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"},
		{in: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", want: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"},
		{in: "0xc02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", wantErr: "checksum mismatch"},
		{in: "0x1234", wantErr: "bad hex length"},
		{in: "0xzz2aaa39b223fe8d0a0e5c4f27ead9083c756cc2", wantErr: "not hex"},
		{in: "", wantErr: "empty address"},
	}
	for _, tc := range cases {
		got, err := NormalizeAddress(tc.in)
		if tc.wantErr != "" {
			require.Error(t, err, tc.in)
			assert.Contains(t, err.Error(), tc.wantErr)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}
