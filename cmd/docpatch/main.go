package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpatch/internal/backfill"
	"git.home.luguber.info/inful/docpatch/internal/clean"
	"git.home.luguber.info/inful/docpatch/internal/config"
	"git.home.luguber.info/inful/docpatch/internal/guides"
	"git.home.luguber.info/inful/docpatch/internal/merge"
	"git.home.luguber.info/inful/docpatch/internal/version"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docpatch.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Show version information"`

	Merge struct {
		Structure string `required:"" help:"Structure JSON file from the doc generator"`
		Docs      string `required:"" help:"Doc-comment JSON file from the doc generator"`
		Source    string `required:"" help:"Source file the offsets refer to"`
		Output    string `short:"o" required:"" help:"Output JSON file"`
	} `cmd:"" help:"Merge structure and doc-comment JSON into enriched doc records"`

	Backfill struct {
		SourceDir string `required:"" help:"Directory containing Swift source files"`
		DocsDir   string `required:"" help:"Rendered documentation directory"`
	} `cmd:"" help:"Recover doc comments from source and fill Undocumented placeholders"`

	Guides struct {
		DocsDir string `required:"" help:"Rendered documentation directory"`
	} `cmd:"" help:"Render configured markdown guides into their page shells"`

	Clean struct {
		DocsDir string `required:"" help:"Rendered documentation directory"`
	} `cmd:"" help:"Apply configured cleanup rewrites to every page"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version.String()})

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "merge":
		if err := runMerge(); err != nil {
			slog.Error("Merge failed", "error", err)
			os.Exit(1)
		}
	case "backfill":
		if err := runBackfill(); err != nil {
			slog.Error("Backfill failed", "error", err)
			os.Exit(1)
		}
	case "guides":
		if err := runGuides(); err != nil {
			slog.Error("Guide update failed", "error", err)
			os.Exit(1)
		}
	case "clean":
		if err := runClean(); err != nil {
			slog.Error("Clean failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := runInit(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
	}
}

func runMerge() error {
	count, err := merge.Run(merge.Options{
		StructurePath: CLI.Merge.Structure,
		DocsPath:      CLI.Merge.Docs,
		SourcePath:    CLI.Merge.Source,
		OutputPath:    CLI.Merge.Output,
	})
	if err != nil {
		return err
	}
	slog.Info("Merge completed", "records", count, "output", CLI.Merge.Output)
	return nil
}

func runBackfill() error {
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := backfill.NewService(cfg, CLI.Backfill.SourceDir, CLI.Backfill.DocsDir)
	summary, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Backfill completed",
		"files", summary.FilesScanned,
		"pages", summary.PagesRewritten,
		"replacements", summary.Replacements,
		"skipped", len(summary.SkippedPages))
	return nil
}

func runGuides() error {
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		return err
	}
	if len(cfg.Guides) == 0 {
		slog.Warn("No guide pages configured")
		return nil
	}

	updater := guides.NewUpdater(CLI.Guides.DocsDir)
	updated := updater.UpdateAll(cfg.Guides)
	slog.Info("Guide update completed", "updated", updated, "configured", len(cfg.Guides))
	return nil
}

func runClean() error {
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		return err
	}

	cleaner, err := clean.NewCleaner(cfg.Clean)
	if err != nil {
		return err
	}

	changed, err := cleaner.CleanTree(CLI.Clean.DocsDir)
	if err != nil {
		return err
	}

	if len(changed) == 0 {
		slog.Info("No changes needed")
		return nil
	}
	slog.Info("Clean completed", "files", len(changed))
	for _, path := range changed {
		slog.Info("  Cleaned file", "path", path)
	}
	return nil
}

func runInit(configPath string, force bool) error {
	slog.Info("Initializing configuration", "path", configPath, "force", force)
	return config.Init(configPath, force)
}
