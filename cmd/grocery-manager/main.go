package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/Ratio1/grocery_manager_go/internal/devseed"
	"github.com/Ratio1/grocery_manager_go/internal/tui"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
	"github.com/Ratio1/grocery_manager_go/pkg/grocerysdk"
	"github.com/Ratio1/grocery_manager_go/pkg/inventory"
)

func main() {
	cfg, err := grocerysdk.ConfigFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "runtime mode (http, mock, auto)")
	flag.StringVar(&cfg.BaseURL, "api", cfg.BaseURL, "backend base URL (default "+grocerysdk.DefaultBaseURL+")")
	flag.StringVar(&cfg.MockSeed, "seed", cfg.MockSeed, "JSON item seed for mock mode")
	flag.StringVar(&cfg.IDStrategy, "ids", cfg.IDStrategy, "id strategy for new items (uuid, timestamp)")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	var opts runOptions
	flag.BoolVar(&opts.list, "list", false, "print the items once and exit")
	flag.StringVar(&opts.export, "export", "", "write the items to this JSON seed file and exit")
	flag.StringVar(&opts.search, "search", "", "name filter for -list and -export")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runOptions struct {
	list   bool
	export string
	search string
}

func run(ctx context.Context, cfg grocerysdk.Config, opts runOptions) error {
	// The TUI owns the terminal, so logs only go to a file.
	var fallback io.Writer
	if opts.list || opts.export != "" {
		fallback = os.Stderr
	}
	logger, closer, err := cfg.Logger(fallback)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, mode, err := grocerysdk.New(cfg)
	if err != nil {
		return err
	}
	newID, err := grocerysdk.IDGenerator(cfg)
	if err != nil {
		return err
	}
	logger.Info("grocery manager starting", "mode", mode, "ids", cfg.IDStrategy)

	vm := inventory.New(client, inventory.WithIDGenerator(newID), inventory.WithLogger(logger))
	switch {
	case opts.export != "":
		return exportItems(ctx, opts.export, vm, opts.search)
	case opts.list:
		return printItems(ctx, os.Stdout, vm, opts.search)
	}
	return tui.Run(ctx, vm)
}

// exportItems writes the matching items as a seed file that -seed can load.
func exportItems(ctx context.Context, path string, vm *inventory.ViewModel, search string) error {
	if err := vm.LoadAll(ctx); err != nil {
		return err
	}
	vm.SetSearchFilter(search)
	return devseed.WriteItemSeed(path, vm.VisibleItems())
}

func printItems(ctx context.Context, w io.Writer, vm *inventory.ViewModel, search string) error {
	if err := vm.LoadAll(ctx); err != nil {
		return err
	}
	vm.SetSearchFilter(search)
	items := vm.VisibleItems()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDESCRIPTION\tQUANTITY")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t₹%s\t%s\t%s\n", it.ID, it.Name, it.Price, it.Description, it.Quantity)
	}
	return tw.Flush()
}

var _ inventory.Store = (*grocery.Client)(nil)
