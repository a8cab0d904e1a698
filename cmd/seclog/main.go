package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hejijunhao/seclog/internal/config"
	"github.com/hejijunhao/seclog/internal/engine/catalog"
	"github.com/hejijunhao/seclog/internal/engine/filter"
	"github.com/hejijunhao/seclog/internal/eventlog"
	"github.com/hejijunhao/seclog/internal/export"
	"github.com/hejijunhao/seclog/internal/logging"
	"github.com/hejijunhao/seclog/internal/pipeline"
	"github.com/hejijunhao/seclog/internal/tui"

	// Register eventlog backends.
	_ "github.com/hejijunhao/seclog/internal/eventlog/replay"
	_ "github.com/hejijunhao/seclog/internal/eventlog/wineventlog"
)

// cliFlags holds values only the command line provides.
type cliFlags struct {
	search  string
	from    string
	to      string
	disable string
	export  string
	out     string
}

func main() {
	cfg := config.Load()
	fl := parseFlags(&cfg)

	if cfg.ShowVersion {
		fmt.Println("seclog " + config.Version)
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "seclog: invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fl); err != nil {
		fmt.Fprintf(os.Stderr, "seclog: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(cfg *config.Config) cliFlags {
	var fl cliFlags

	flag.StringVar(&cfg.Source.Provider, "source", cfg.Source.Provider, "eventlog provider: wineventlog or replay")
	flag.StringVar(&cfg.Source.Channel, "channel", cfg.Source.Channel, "event log channel to read")
	flag.StringVar(&cfg.Source.ReplayFile, "replay", cfg.Source.ReplayFile, "NDJSON dump read by the replay provider")
	flag.StringVar(&cfg.Engine.CatalogFile, "catalog", cfg.Engine.CatalogFile, "YAML pattern catalog (default: built-in)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	flag.StringVar(&fl.search, "search", "", "case-insensitive text filter")
	flag.StringVar(&fl.from, "from", "", "first day to include, DD-MM-YYYY")
	flag.StringVar(&fl.to, "to", "", "last day to include, DD-MM-YYYY")
	flag.StringVar(&fl.disable, "disable", "", "comma-separated event codes to leave out")
	flag.StringVar(&fl.export, "export", "", "comma-separated formats to write without the UI ("+strings.Join(export.Formats(), ", ")+")")
	flag.StringVar(&fl.out, "out", "", "export base path, extension added per format (default: <export dir>/seclog-<time>)")
	flag.Parse()

	// A replay file on the command line implies the replay provider unless
	// -source was given too.
	if cfg.Source.ReplayFile != "" && !flagSet("source") && os.Getenv("SECLOG_SOURCE") == "" {
		cfg.Source.Provider = "replay"
	}
	return fl
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func run(ctx context.Context, cfg config.Config, fl cliFlags) error {
	level := logging.ParseLevel(cfg.LogLevel)
	headless := fl.export != ""
	if headless {
		logging.Init(false, level)
	} else {
		closer, err := logging.InitFile(cfg.LogFile, level)
		if err != nil {
			return err
		}
		defer closer.Close()
	}

	criteria, err := parseCriteria(fl)
	if err != nil {
		return err
	}
	disabled, err := parseCodes(fl.disable)
	if err != nil {
		return err
	}

	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	for _, code := range disabled {
		session.Disable(code)
	}
	session.Apply(criteria)

	slog.Info("seclog starting",
		"version", config.Version,
		"source", cfg.Source.Provider,
		"channel", cfg.Source.Channel,
		"patterns", len(session.CatalogEntries()),
	)

	if !headless {
		return tui.Run(ctx, session, tui.Options{
			Channel:   cfg.Source.Channel,
			ExportDir: cfg.Output.ExportDir,
			Criteria:  criteria,
		})
	}
	return runExport(ctx, cfg, fl, session)
}

func newSession(cfg config.Config) (*pipeline.Session, error) {
	cat := catalog.Default()
	if cfg.Engine.CatalogFile != "" {
		var err error
		if cat, err = catalog.LoadFile(cfg.Engine.CatalogFile); err != nil {
			return nil, err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	op, err := eventlog.New(eventlog.Config{
		Provider:   cfg.Source.Provider,
		Path:       cfg.Source.ReplayFile,
		BatchSize:  cfg.Source.BatchSize,
		BufferSize: cfg.Source.BufferSize,
	})
	if err != nil {
		return nil, err
	}

	return pipeline.NewSession(pipeline.NewReader(op, cfg.Source.Channel), cat, loc), nil
}

// runExport loads once and writes the filtered events in every requested
// format. A read error still exports what was read before it.
func runExport(ctx context.Context, cfg config.Config, fl cliFlags, s *pipeline.Session) error {
	res, loadErr := s.Load(ctx)
	if pipeline.IsConnectionError(loadErr) {
		return loadErr
	}
	if loadErr != nil && !errors.Is(loadErr, context.Canceled) {
		slog.Warn("exporting partial results", "read", res.Read, "kept", res.Kept, "error", loadErr)
	}

	base := fl.out
	if base == "" {
		base = filepath.Join(cfg.Output.ExportDir, "seclog-"+time.Now().Format("20060102-150405"))
	}

	paths, err := export.WriteFiles(base, splitList(fl.export), s.Rows())
	for _, p := range paths {
		fmt.Println(p)
	}
	return errors.Join(err, loadErr)
}

func parseCriteria(fl cliFlags) (filter.Criteria, error) {
	start, err := filter.ParseDate(fl.from)
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("-from: %w", err)
	}
	end, err := filter.ParseDate(fl.to)
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("-to: %w", err)
	}
	return filter.Criteria{Search: fl.search, Start: start, End: end}, nil
}

func parseCodes(s string) ([]uint32, error) {
	var codes []uint32
	for _, f := range splitList(s) {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("-disable: invalid event code %q", f)
		}
		codes = append(codes, uint32(n))
	}
	return codes, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
