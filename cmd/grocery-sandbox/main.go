package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/Ratio1/grocery_manager_go/internal/devseed"
	"github.com/Ratio1/grocery_manager_go/internal/sandbox"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery/mock"
	"github.com/Ratio1/grocery_manager_go/pkg/grocerysdk"
)

const (
	apiURLEnv       = "GROCERY_API_URL"
	shutdownTimeout = 10 * time.Second
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	dbPath := flag.String("db", "", "SQLite database path (in-memory store when empty)")
	seed := flag.String("seed", "", "path to JSON item seed")
	latency := flag.Duration("latency", 0, "artificial latency to inject per request")
	fail := flag.String("fail", "", "failure injection (rate=<float>,code=<httpStatus>)")
	logLevel := flag.String("log-level", os.Getenv("GROCERY_LOG_LEVEL"), "log level (debug, info, warn, error)")
	flag.Parse()

	level, err := grocerysdk.ParseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *addr, *dbPath, *seed, *latency, *fail); err != nil {
		logger.Error("sandbox failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, seedPath string, latency time.Duration, fail string) error {
	failCfg, err := sandbox.ParseFailConfig(fail)
	if err != nil {
		return fmt.Errorf("parse fail flag: %w", err)
	}

	store, closeStore, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer closeStore()

	if seedPath != "" {
		items, err := devseed.LoadItemSeed(seedPath)
		if err != nil {
			return err
		}
		if err := seedStore(store, items); err != nil {
			return fmt.Errorf("apply seed: %w", err)
		}
		logger.Info("seed applied", "items", len(items))
	}

	srv := sandbox.New(store, sandbox.Config{Latency: latency, Failure: failCfg}, logger)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	logger.Info("grocery-sandbox listening", "addr", ln.Addr().String(), "db", dbPath, "latency", latency, "fail_rate", failCfg.Rate)
	printExports(addr)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down")
				return srv.Shutdown(ctx)
			},
		},
	)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return errors.New("server stopped unexpectedly")
	case code := <-wait:
		logger.Info("sandbox exited", "code", code)
		if code != 0 {
			return fmt.Errorf("shutdown exited with code %d", code)
		}
		return nil
	}
}

func openStore(dbPath string) (grocery.Backend, func(), error) {
	if dbPath == "" {
		return mock.New(), func() {}, nil
	}
	db, err := sandbox.OpenDB(dbPath)
	if err != nil {
		return nil, nil, err
	}
	repo := sandbox.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}

// seedStore inserts items that are not stored yet, so a persistent database
// can be restarted with the same -seed flag.
func seedStore(store grocery.Backend, items []grocery.Item) error {
	ctx := context.Background()
	for _, it := range items {
		if err := store.Create(ctx, it); err != nil && !errors.Is(err, grocery.ErrConflict) {
			return err
		}
	}
	return nil
}

func printExports(addr string) {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	fmt.Println()
	fmt.Println("export GROCERY_RUNTIME_MODE=http")
	fmt.Printf("export %s=http://%s/api\n", apiURLEnv, host)
	fmt.Println()
}
