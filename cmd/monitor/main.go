package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"insiderwatch/internal/archive"
	"insiderwatch/internal/config"
	"insiderwatch/internal/edgar"
	"insiderwatch/internal/notify"
	"insiderwatch/internal/poll"
	"insiderwatch/internal/secrets"
	"insiderwatch/internal/seen"
)

type tickerList []string

func (t *tickerList) String() string { return strings.Join(*t, ",") }
func (t *tickerList) Set(v string) error {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v != "" {
		*t = append(*t, v)
	}
	return nil
}

var (
	tickers       tickerList
	watchlistPath = flag.String("watchlist", "", "file with tickers, one per line (# comments allowed)")
	interval      = flag.Int("interval", 0, "check interval in whole minutes (default from config: 30)")
	once          = flag.Bool("once", false, "run a single cycle and exit")
	stats         = flag.Bool("stats", false, "print archive statistics and exit")
	sourceName    = flag.String("source", "edgar", "filing source: edgar or screener")
	screenerURL   = flag.String("screener-url", "", "screener page URL (required with -source screener)")
	dataDirFlag   = flag.String("data-dir", "", "data directory (default $INSIDERWATCH_DATA_DIR or ./data)")
	webhookFlag   = flag.String("webhook", "", "webhook URL override")
	contactFlag   = flag.String("contact", "", "EDGAR contact string override (sent as User-Agent)")
)

func init() {
	flag.Var(&tickers, "ticker", "ticker to monitor (repeatable)")
}

func main() {
	flag.Parse()

	dataDir := *dataDirFlag
	if dataDir == "" {
		dataDir = os.Getenv("INSIDERWATCH_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("create data dir %s: %v", dataDir, err)
	}

	if *stats {
		runStats(dataDir)
		return
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	cfg.App.DataDir = dataDir
	config.OverlayEnv(&cfg)

	// flags win over env, env wins over file
	if *contactFlag != "" {
		cfg.SEC.Contact = *contactFlag
	}
	if *webhookFlag != "" {
		cfg.Sinks.Webhook.URL = *webhookFlag
	}
	if *interval > 0 {
		cfg.Polling.IntervalMinutes = *interval
	}
	if len(tickers) > 0 {
		cfg.Watchlist = tickers
	}
	if *watchlistPath != "" {
		wl, err := config.LoadWatchlist(*watchlistPath)
		if err != nil {
			log.Fatalf("watchlist: %v", err)
		}
		cfg.Watchlist = append(cfg.Watchlist, wl...)
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !v.OK() {
		log.Fatalf("config invalid:\n- %s", strings.Join(v.Errors, "\n- "))
	}

	seenStore, err := seen.Open(filepath.Join(dataDir, "seen_filings.json"))
	if err != nil {
		log.Fatalf("seen store: %v", err)
	}
	defer seenStore.Close()

	var arch *archive.Store
	if a, err := archive.Open(filepath.Join(dataDir, "insiderwatch.db")); err != nil {
		log.Printf("[archive] disabled: %v", err)
	} else {
		arch = a
		defer arch.Close()
	}

	source, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("source: %v", err)
	}

	cycle := &poll.Cycle{
		Source:     source,
		Seen:       seenStore,
		Dispatcher: buildDispatcher(cfg),
		Archive:    arch,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		_, _ = cycle.Run(ctx)
		return
	}

	p := &poll.Poller{
		Interval: time.Duration(cfg.Polling.IntervalMinutes) * time.Minute,
		Cycle:    cycle,
	}
	p.Run(ctx)
}

func buildSource(cfg config.Config) (edgar.Source, error) {
	switch *sourceName {
	case "edgar":
		client, err := edgar.NewClient(cfg.SEC.Contact)
		if err != nil {
			return nil, err
		}
		return &edgar.FeedSource{
			Client:   client,
			Resolver: edgar.NewResolver(client),
			Tickers:  cfg.Watchlist,
			Count:    cfg.SEC.FeedCount,
		}, nil
	case "screener":
		if *screenerURL == "" {
			return nil, errors.New("-screener-url is required with -source screener")
		}
		return edgar.NewScreenerSource(*screenerURL, cfg.SEC.Contact), nil
	default:
		return nil, fmt.Errorf("unknown source %q", *sourceName)
	}
}

func buildDispatcher(cfg config.Config) *notify.Dispatcher {
	var sinks []notify.Sink

	sinks = append(sinks, notify.NewWebhookSink(cfg.Sinks.Webhook.URL))

	if cfg.Sinks.Telegram.ChatID != "" {
		token, err := secrets.TelegramToken()
		if err != nil {
			log.Printf("[notify] telegram chat configured but no token: %v", err)
		} else {
			sinks = append(sinks, notify.NewTelegramSink(token, cfg.Sinks.Telegram.ChatID))
		}
	}

	if cfg.Sinks.Email.Enabled {
		sinks = append(sinks, notify.NewEmailSink(notify.EmailConfig{
			SMTPHost: cfg.Sinks.Email.SMTPHost,
			SMTPPort: cfg.Sinks.Email.SMTPPort,
			Username: cfg.Sinks.Email.Username,
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     cfg.Sinks.Email.From,
			To:       cfg.Sinks.Email.To,
		}))
	}

	return notify.NewDispatcher(sinks...)
}

func runStats(dataDir string) {
	arch, err := archive.Open(filepath.Join(dataDir, "insiderwatch.db"))
	if err != nil {
		log.Fatalf("archive: %v", err)
	}
	defer arch.Close()

	st, err := arch.Stats(context.Background())
	if err != nil {
		log.Fatalf("stats: %v", err)
	}

	fmt.Println("=== insiderwatch statistics ===")
	fmt.Printf("Total filings: %d\n", st.TotalFilings)
	fmt.Printf("Last 24 hours: %d\n", st.Last24h)
	if len(st.TopTickers) > 0 {
		fmt.Println("\nTop tickers:")
		for _, tc := range st.TopTickers {
			fmt.Printf("  %-6s %d\n", tc.Ticker, tc.Count)
		}
	}
}
