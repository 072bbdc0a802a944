package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/rajkumarptv/ChitLedger/internal/auth"
	"github.com/rajkumarptv/ChitLedger/internal/blob"
	"github.com/rajkumarptv/ChitLedger/internal/config"
	"github.com/rajkumarptv/ChitLedger/internal/identity"
	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/server"
	"github.com/rajkumarptv/ChitLedger/internal/service"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
	"github.com/rajkumarptv/ChitLedger/internal/storage/sqlite"
	"github.com/rajkumarptv/ChitLedger/pkg/logging"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "path to config file")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	if err := seedGroup(context.Background(), store, cfg.Group); err != nil {
		slog.Error("Failed to seed group", "error", err)
		os.Exit(1)
	}

	receipts, err := blob.NewFileStore(cfg.Receipts.Dir, cfg.Receipts.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize receipt store", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	resolver := identity.NewResolver(store)

	handler := server.NewHandler(
		service.NewAuthService(resolver, jwtManager, store),
		service.NewPaymentService(store),
		service.NewAuctionService(store),
		service.NewMemberService(store),
		service.NewConfigService(store),
		receipts,
	)
	router := server.NewRouter(handler, jwtManager, receipts.Dir(), cfg.Receipts.BaseURL)

	// h2c lets gRPC-capable proxies and curl --http2-prior-knowledge talk
	// HTTP/2 without TLS termination here.
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// seedGroup writes the bootstrap group configuration on first run. An
// existing group is never overwritten from the file.
func seedGroup(ctx context.Context, store storage.Store, group config.GroupConfig) error {
	existing, err := store.GetConfig(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	var pinHash string
	if group.AdminPIN != "" {
		pinHash, err = auth.HashPIN(group.AdminPIN)
		if err != nil {
			return err
		}
	}

	cfg := &models.ChitConfig{
		Name:                   group.Name,
		TotalChitValue:         group.TotalChitValue,
		FixedMonthlyCollection: group.FixedMonthlyCollection,
		MonthlyPayoutBase:      group.MonthlyPayoutBase,
		DurationMonths:         group.DurationMonths,
		StartDate:              group.StartDate,
		AdminPhone:             group.AdminPhone,
		AdminPINHash:           pinHash,
		UPIID:                  group.UPIID,
		UPIName:                group.UPIName,
	}
	if err := store.SaveConfig(ctx, cfg); err != nil {
		return err
	}
	slog.Info("Group seeded from config", "name", cfg.Name, "duration", cfg.DurationMonths)
	return nil
}
