// Command server starts the Privacy Dash daemon: an encrypted-invoice
// payment-request dashboard for a single local installation.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/privacydash/privacydash/docs"
	"github.com/privacydash/privacydash/internal/api"
	"github.com/privacydash/privacydash/internal/client"
	"github.com/privacydash/privacydash/internal/config"
	"github.com/privacydash/privacydash/internal/handler"
	"github.com/privacydash/privacydash/internal/payment"
	"github.com/privacydash/privacydash/internal/storage"
	"github.com/privacydash/privacydash/internal/store"
	"github.com/privacydash/privacydash/internal/vault"
	"github.com/privacydash/privacydash/internal/wallet"
)

// Persisted slot names inside the data directory. The key slot label is
// fixed: moving it orphans every existing ciphertext.
const (
	masterKeySlot = "master_key.json"
	requestsSlot  = "requests.json"
	profilesSlot  = "profiles.json"
)

// @title        Privacy Dash API
// @version      1.0
// @description  Confidential payment requests over Solana: encrypted invoices, shareable payment links and a local payer wallet.
// @BasePath     /
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Init(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence slots
	keySlot, err := storage.NewFileSlot(filepath.Join(cfg.DataDir, masterKeySlot))
	if err != nil {
		logger.Fatal("failed to open key slot", zap.Error(err))
	}
	reqSlot, err := storage.NewFileSlot(filepath.Join(cfg.DataDir, requestsSlot))
	if err != nil {
		logger.Fatal("failed to open request slot", zap.Error(err))
	}
	profSlot, err := storage.NewFileSlot(filepath.Join(cfg.DataDir, profilesSlot))
	if err != nil {
		logger.Fatal("failed to open profile slot", zap.Error(err))
	}

	// Vault
	keys := vault.NewKeyManager(keySlot)
	cipher := vault.NewCipher(keys)

	// RPC collaborator
	rpcClient := client.NewSolanaClient(cfg.SolanaRPCURL, cfg.ConfirmInterval)

	// Stores
	requests, err := store.NewRequestStore(reqSlot, logger)
	if err != nil {
		logger.Fatal("failed to load request collection", zap.Error(err))
	}
	profiles, err := store.NewProfileStore(profSlot, rpcClient, logger)
	if err != nil {
		logger.Fatal("failed to load profile map", zap.Error(err))
	}

	// Optional local payer wallet: without it the daemon is merchant-only
	var payerWallet payment.Wallet
	if cfg.WalletFilePath != "" {
		if err := config.PromptForPassphrase(); err != nil {
			logger.Fatal("failed to read wallet passphrase", zap.Error(err))
		}
		pass, err := config.GetWalletPassphraseBytes()
		if err != nil {
			logger.Fatal("wallet passphrase missing", zap.Error(err))
		}
		lw, err := wallet.Open(cfg.WalletFilePath, pass, rpcClient)
		clear(pass)
		if err != nil {
			logger.Fatal("failed to open wallet file", zap.Error(err))
		}
		defer lw.Close()
		payerWallet = lw
		logger.Info("local wallet loaded", zap.String("address", lw.Address().String()))
	}

	executor := payment.NewExecutor(requests, rpcClient, cfg.ConfirmTimeout, logger)

	router := api.SetupRouter(api.Handlers{
		Requests: handler.NewRequestHandler(requests, cipher, logger),
		Pay:      handler.NewPayHandler(requests, executor, payerWallet, cfg.PublicBaseURL, logger),
		Vault:    handler.NewVaultHandler(keys, logger),
		Profile:  handler.NewProfileHandler(profiles, logger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("rpc", cfg.SolanaRPCURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
