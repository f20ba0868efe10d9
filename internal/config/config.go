package config

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/you/swap-quoter/internal/chain"
	"github.com/you/swap-quoter/internal/types"
)

type AssetCfg struct {
	Symbol  string `yaml:"symbol"`
	Address string `yaml:"address"`
	Pair    string `yaml:"pair"`
}

type Config struct {
	Reference   string `yaml:"reference"`
	USD         string `yaml:"usd"`
	FeeBps      uint32 `yaml:"fee_bps"`
	SlippageBps uint32 `yaml:"slippage_bps"`
	GasFloorWei string `yaml:"gas_floor_wei"`

	Assets []AssetCfg `yaml:"assets"`

	Chain struct {
		RPCHTTP   string `yaml:"rpc_http"`
		Multicall string `yaml:"multicall"`
		Spender   string `yaml:"spender"`
	} `yaml:"chain"`

	Redis struct {
		Addr      string `yaml:"addr"`
		DB        int    `yaml:"db"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
		SnapNS    string `yaml:"snap_ns"`
		ActiveKey string `yaml:"active_key"`
	} `yaml:"redis"`

	API struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"api"`

	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`

	Timings struct {
		RefreshMs int `yaml:"refresh_ms"`
	} `yaml:"timings"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.FeeBps == 0 {
		c.FeeBps = 30
	}
	if c.SlippageBps == 0 {
		c.SlippageBps = 200
	}
	if c.GasFloorWei == "" {
		// 0.01 ether: enough native balance to fund the swap transaction.
		c.GasFloorWei = "10000000000000000"
	}
	if c.Timings.RefreshMs == 0 {
		c.Timings.RefreshMs = 3000
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":8080"
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Reference == "" {
		return fmt.Errorf("config: reference asset is required")
	}
	if _, ok := new(big.Int).SetString(c.GasFloorWei, 10); !ok {
		return fmt.Errorf("config: bad gas_floor_wei %q", c.GasFloorWei)
	}

	haveRef := false
	for i, a := range c.Assets {
		if a.Symbol == "" {
			return fmt.Errorf("config: asset %d has no symbol", i)
		}
		addr, err := NormalizeAddress(a.Address)
		if err != nil {
			return fmt.Errorf("config: asset %s address: %w", a.Symbol, err)
		}
		c.Assets[i].Address = addr
		if a.Symbol == c.Reference {
			haveRef = true
			continue
		}
		pair, err := NormalizeAddress(a.Pair)
		if err != nil {
			return fmt.Errorf("config: asset %s pair: %w", a.Symbol, err)
		}
		c.Assets[i].Pair = pair
	}
	if !haveRef {
		return fmt.Errorf("config: reference asset %s missing from assets", c.Reference)
	}

	for name, addr := range map[string]string{
		"multicall": c.Chain.Multicall,
		"spender":   c.Chain.Spender,
	} {
		norm, err := NormalizeAddress(addr)
		if err != nil {
			return fmt.Errorf("config: chain.%s: %w", name, err)
		}
		if name == "multicall" {
			c.Chain.Multicall = norm
		} else {
			c.Chain.Spender = norm
		}
	}
	return nil
}

func (c *Config) GasFloor() *big.Int {
	v, _ := new(big.Int).SetString(c.GasFloorWei, 10)
	return v
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Timings.RefreshMs) * time.Millisecond
}

// ChainAssets maps the configured asset list into chain lookups.
func (c *Config) ChainAssets() []chain.Asset {
	out := make([]chain.Asset, 0, len(c.Assets))
	for _, a := range c.Assets {
		out = append(out, chain.Asset{
			Symbol: types.Symbol(a.Symbol),
			Token:  common.HexToAddress(a.Address),
			Pair:   common.HexToAddress(a.Pair),
		})
	}
	return out
}

// HasAsset reports whether sym is configured.
func (c *Config) HasAsset(sym types.Symbol) bool {
	for _, a := range c.Assets {
		if types.Symbol(a.Symbol) == sym {
			return true
		}
	}
	return false
}
