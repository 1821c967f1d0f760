package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/fieldservice/internal/ai"
	"github.com/nhle/fieldservice/internal/app"
	"github.com/nhle/fieldservice/internal/logger"
	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/orders"
	"github.com/nhle/fieldservice/internal/seed"
	"github.com/nhle/fieldservice/internal/store"
)

func main() {
	os.Exit(Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// startUI is a variable so tests can dispatch without a terminal.
var startUI = runUI

// Run dispatches on the first argument and returns the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		return startUI(args[1:], stderr)
	}

	switch args[1] {
	case "run":
		return startUI(args[2:], stderr)
	case "set-key":
		return runSetKey(stdin, stdout, stderr)
	case "clear-key":
		return runClearKey(stdout, stderr)
	case "init-config":
		return runInitConfig(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		if strings.HasPrefix(args[1], "-") {
			return startUI(args[1:], stderr)
		}
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", args[1])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `Usage: fieldservice [command] [flags]

Commands:
  run           start the terminal UI (default)
  set-key       read an Anthropic API key from stdin and store it in the keyring
  clear-key     remove the stored API key
  init-config   write the default configuration file

Flags:
  -config path  configuration file (default ~/.config/fieldservice/config.yaml)`)
}

func runUI(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", model.DefaultConfigPath(), "configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logFile, err := logger.OpenFile(cfg.Log.Path)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()

	log := logger.New(cfg.Environment, cfg.Log.Level, logFile)

	ctx := context.Background()
	catalog, err := store.OpenSeeded(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open catalog")
		_, _ = fmt.Fprintf(stderr, "failed to open catalog: %v\n", err)
		return 1
	}
	defer catalog.Close()
	log.Debug().Msg("reference catalog seeded")

	gen := seed.NewRandom(cfg.Seed.RandomSeed, time.Now)
	var initial []model.WorkOrder
	if cfg.Seed.DemoOrders {
		initial = seed.DemoOrders(gen)
	}
	orderStore := orders.NewStore(initial, orders.DefaultEnv(gen, cfg.Seed.AnnualItemCount), log)

	apiKey := lookupAPIKey(log)
	recommender := ai.New(apiKey, cfg.AI, log)

	m := app.New(app.Deps{
		Orders:      orderStore,
		Catalog:     catalog,
		Recommender: recommender,
		Config:      cfg,
		Log:         log,
		AIEnabled:   apiKey != "",
	})

	log.Info().
		Int("orders", len(initial)).
		Bool("ai_enabled", apiKey != "").
		Msg("starting field service")

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("ui stopped")
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
