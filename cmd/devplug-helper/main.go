package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/devplug/internal/config"
	"git.home.luguber.info/inful/devplug/internal/errors"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"/etc/devplug/config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Add struct {
		Link   []string `help:"Symlink to record, TARGET=SOURCE (repeatable)"`
		Tag    []string `help:"Tag to attach to the device (repeatable)"`
		Import []string `help:"Property names to import from the event context (repeatable)"`
		Probe  bool     `help:"Probe the device node and record its attributes as properties"`
	} `cmd:"" help:"Handle an add event: record links, tags and properties for the device"`

	Remove struct{} `cmd:"" help:"Handle a remove event: undo everything the add chain recorded"`

	ID struct{} `cmd:"" name:"id" help:"Print the device id derived from the event context"`

	Walk struct {
		Path      string `arg:"" help:"Device-tree path to query"`
		Parent    bool   `help:"Print the parent device path"`
		Driver    bool   `help:"Print the nearest bound driver name"`
		Subsystem bool   `help:"Print the nearest subsystem name"`
		Attr      string `help:"Print the named attribute at exactly this path"`
		Attrs     string `help:"Print the named attribute at every ancestor, nearest first"`
	} `cmd:"" help:"Query the kernel device tree"`

	Probe struct {
		Path   string `arg:"" help:"Device node to probe"`
		Escape bool   `help:"Single-quote values for shell re-evaluation"`
	} `cmd:"" help:"Run the probe tool and print canonical KEY=\"VALUE\" lines"`

	Tag struct {
		Add  string `help:"Tag to add to the event's device"`
		Test string `help:"Tag to test on the event's device (exit 1 when absent)"`
		List string `help:"List devices carrying this tag from the reverse index"`
	} `cmd:"" help:"Manage device tags"`

	Feature struct {
		Set  string `help:"Feature marker to set in the global store"`
		Test string `help:"Feature marker to test (exit 1 when absent)"`
	} `cmd:"" help:"Manage global feature flags"`

	Daemon struct{} `cmd:"" help:"Run the maintenance daemon (sweep, watch, metrics)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := cfg.LogLevel()
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	switch kctx.Command() {
	case "add":
		runErr = runAdd(ctx, cfg, logger)
	case "remove":
		runErr = runRemove(ctx, cfg, logger)
	case "id":
		runErr = runID()
	case "walk <path>":
		runErr = runWalk()
	case "probe <path>":
		runErr = runProbe(ctx, cfg, logger)
	case "tag":
		runErr = runTag(ctx, cfg, logger)
	case "feature":
		runErr = runFeature(cfg, logger)
	case "daemon":
		runErr = runDaemon(ctx, cfg, logger)
	default:
		logger.Error("unknown command", "command", kctx.Command())
		os.Exit(1)
	}

	adapter.LogError(runErr)
	os.Exit(adapter.ExitCodeFor(runErr))
}
