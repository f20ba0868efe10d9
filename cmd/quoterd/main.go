package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/you/swap-quoter/internal/api"
	"github.com/you/swap-quoter/internal/cache"
	"github.com/you/swap-quoter/internal/chain"
	"github.com/you/swap-quoter/internal/config"
	"github.com/you/swap-quoter/internal/feed"
	"github.com/you/swap-quoter/internal/metrics"
	"github.com/you/swap-quoter/internal/types"
)

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

func main() {
	cfgPath := flag.String("config", "./config.yaml", "path to config file")
	flag.Parse()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		logger.Warn("received signal, shutting down...")
		cancel()
	}()

	metrics.Serve(ctx, cfg.Metrics.ListenAddr, nil, logger)

	ec, err := ethclient.DialContext(ctx, cfg.Chain.RPCHTTP)
	if err != nil {
		logger.Fatal("failed to connect to node", zap.Error(err))
	}
	defer ec.Close()

	source, err := chain.NewSource(ec,
		common.HexToAddress(cfg.Chain.Multicall),
		common.HexToAddress(cfg.Chain.Spender),
		types.Symbol(cfg.Reference),
	)
	if err != nil {
		logger.Fatal("failed to build chain source", zap.Error(err))
	}

	var sink feed.Sink
	if cfg.Redis.Addr != "" {
		store := cache.NewStore(cache.Options{
			Addr:      cfg.Redis.Addr,
			DB:        cfg.Redis.DB,
			Username:  cfg.Redis.Username,
			Password:  cfg.Redis.Password,
			SnapNS:    cfg.Redis.SnapNS,
			ActiveKey: cfg.Redis.ActiveKey,
		})
		defer store.Close()
		sink = store
	}
	go feed.Run(ctx, cfg.RefreshInterval(), cfg.ChainAssets(), types.Symbol(cfg.Reference), source, sink, logger)

	srv := api.New(cfg, source, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen() }()

	logger.Info("quoter started",
		zap.String("reference", cfg.Reference),
		zap.Int("assets", len(cfg.Assets)),
		zap.Uint32("fee_bps", cfg.FeeBps),
		zap.Uint32("slippage_bps", cfg.SlippageBps),
	)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("api server error", zap.Error(err))
		}
	}
	_ = srv.Shutdown()
}
