// Crunchy is a conversational ordering assistant for the bakery menu API.
//
// Usage:
//
//	crunchy [-config crunchy.yaml] [-backend URL] [-plain] [-track] [-no-ai] [-verbose] [-quiet]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"

	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/hammamikhairi/crunchyorder/internal/backend"
	"github.com/hammamikhairi/crunchyorder/internal/catalog"
	"github.com/hammamikhairi/crunchyorder/internal/checkout"
	"github.com/hammamikhairi/crunchyorder/internal/config"
	"github.com/hammamikhairi/crunchyorder/internal/conversation"
	"github.com/hammamikhairi/crunchyorder/internal/delivery"
	"github.com/hammamikhairi/crunchyorder/internal/dialog"
	"github.com/hammamikhairi/crunchyorder/internal/display"
	"github.com/hammamikhairi/crunchyorder/internal/extract"
	"github.com/hammamikhairi/crunchyorder/internal/gpt"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
	"github.com/hammamikhairi/crunchyorder/internal/metrics"
	"github.com/hammamikhairi/crunchyorder/internal/storage"
)

// Environment variables for the model backends.
const (
	EnvGPTKey      = "GPT_CHAT_KEY"
	EnvGPTEndpoint = "GPT_CHAT_ENDPOINT"
	EnvOpenAIKey   = "OPENAI_API_KEY"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "crunchy.yaml", "path to the YAML config file (missing file uses defaults)")
	backendURL := flag.String("backend", "", "menu/order API base URL (overrides config)")
	plain := flag.Bool("plain", false, "use the plain line REPL instead of the terminal UI")
	track := flag.Bool("track", false, "after checkout, stay until every delivery has arrived")
	noAI := flag.Bool("no-ai", false, "disable the model fallback even if keys are set")
	provider := flag.String("model-provider", "", "model backend: gpt (REST endpoint) or openai (langchaingo)")
	modelName := flag.String("model", "", "model name (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".crunchy-logs/crunchy.log", "file to write logs to (use \"stderr\" to log to console)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.BackendURL = *backendURL
	}
	if *provider != "" {
		cfg.Model.Provider = *provider
	}
	if *modelName != "" {
		cfg.Model.Name = *modelName
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	// Configure logger.
	logLevel := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the prompt stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		f, err := openLogFile(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (falling back to stderr)\n", err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libraries that use the standard log package go to the same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Metrics.
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		m.Serve(ctx, cfg.Metrics.Addr, log.Named("metrics"))
	}

	// Catalog and backend.
	api := backend.NewClient(cfg.BackendURL, log.Named("backend"), backend.WithHTTPTimeout(cfg.HTTPTimeout))
	index := catalog.Load(ctx, api, log.Named("catalog"))

	// Extraction: patterns first, model only when they find nothing.
	fallback := &extract.FallbackExtractor{
		Primary:  extract.NewPatternExtractor(index, log.Named("pattern")),
		OnResult: m.Extraction,
	}
	if !*noAI {
		if qm := buildModel(cfg, log.Named("model")); qm != nil {
			fallback.Secondary = extract.NewModelExtractor(qm, log.Named("model"))
		}
	}

	// Front end.
	useTUI := !*plain && term.IsTerminal(os.Stdin.Fd())
	var ui *display.UI
	var notifyOpts []conversation.NotifierOption
	switch {
	case useTUI:
		// ui is assigned below, before the scheduler starts ticking.
		notifyOpts = append(notifyOpts, conversation.WithOutput(
			func(s string) { ui.PrintChat(s) },
			func(s string) { ui.PrintUrgent(s) },
		))
	case !*plain && term.IsTerminal(os.Stdout.Fd()):
		notifyOpts = append(notifyOpts, conversation.WithANSI())
	}

	store := storage.NewMemoryStore(log.Named("store"))
	notifier := conversation.NewCLINotifier(log, notifyOpts...)
	scheduler := delivery.New(store, notifier, index, log.Named("delivery"),
		delivery.WithTickInterval(cfg.Delivery.Tick),
		delivery.WithMinute(cfg.Delivery.Minute),
		delivery.WithNotifyCooldown(cfg.Delivery.NotifyCooldown),
		delivery.WithMaxEscalation(cfg.Delivery.MaxEscalation),
		delivery.WithMetrics(m),
	)
	if useTUI {
		ui = display.NewUI(scheduler)
	}

	coordinator := checkout.New(api, scheduler, index, log.Named("checkout"),
		checkout.WithDefaultETA(cfg.DefaultETAMinutes),
		checkout.WithMetrics(m),
	)
	machine := dialog.New(index, cfg.Menu, fallback, coordinator, log.Named("dialog"),
		dialog.WithMetrics(m),
	)

	scheduler.Start(ctx)
	defer scheduler.Stop()

	app := &cliApp{
		machine:   machine,
		scheduler: scheduler,
		track:     *track,
		log:       log,
	}

	if !useTUI {
		app.out = plainOut{}
		app.run(ctx, readLines(os.Stdin))
		return
	}

	app.out = tuiOut{ui: ui}
	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'no' when you're done ordering, Ctrl+C to leave."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

// buildModel returns the configured quantity model, or nil when its
// credentials are missing.
func buildModel(cfg *config.Config, log *logger.Logger) extract.QuantityModel {
	switch cfg.Model.Provider {
	case "openai":
		key := os.Getenv(EnvOpenAIKey)
		if key == "" {
			log.Info("model fallback disabled: set %s to enable", EnvOpenAIKey)
			return nil
		}
		name := cfg.Model.Name
		if name == "" {
			name = config.DefaultOpenAIModel
		}
		llm, err := openai.New(
			openai.WithToken(key),
			openai.WithModel(name),
			openai.WithHTTPClient(&http.Client{Timeout: cfg.Model.Timeout}),
		)
		if err != nil {
			log.Error("model fallback disabled: %v", err)
			return nil
		}
		log.Info("model fallback enabled (langchaingo openai, model=%s)", name)
		return gpt.NewAgent(gpt.NewLangChain(llm, log, llms.WithTemperature(0), llms.WithMaxTokens(200)), log)

	case "gpt", "":
		key, endpoint := os.Getenv(EnvGPTKey), os.Getenv(EnvGPTEndpoint)
		if key == "" || endpoint == "" {
			log.Info("model fallback disabled: set %s and %s to enable", EnvGPTKey, EnvGPTEndpoint)
			return nil
		}
		opts := []gpt.ClientOption{gpt.WithHTTPTimeout(cfg.Model.Timeout)}
		if cfg.Model.Name != "" {
			opts = append(opts, gpt.WithModel(cfg.Model.Name))
		}
		log.Info("model fallback enabled (chat endpoint)")
		return gpt.NewAgent(gpt.NewClient(endpoint, key, log, opts...), log)

	default:
		log.Warn("unknown model provider %q, model fallback disabled", cfg.Model.Provider)
		return nil
	}
}
