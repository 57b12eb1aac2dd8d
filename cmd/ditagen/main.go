package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/ctwg/ditagen/internal/api"
	"github.com/ctwg/ditagen/internal/archive"
	"github.com/ctwg/ditagen/internal/config"
	"github.com/ctwg/ditagen/internal/ditamap"
	"github.com/ctwg/ditagen/internal/draft"
	"github.com/ctwg/ditagen/internal/manifest"
	"github.com/ctwg/ditagen/internal/source"
	"github.com/ctwg/ditagen/internal/workspace"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Serve struct {
	} `cmd:"" help:"Start the HTTP API server"`

	Generate struct {
		Manifest string `short:"f" help:"Chapter manifest file" default:"chapter.yaml"`
		Output   string `short:"o" help:"Output directory" default:"./output"`
		Archive  bool   `help:"Also write a zip archive of the generated files"`
	} `cmd:"" help:"Generate topics and a chapter map from a manifest"`

	Map struct {
		Dir   string `short:"d" help:"Directory of generated topics" default:"./output"`
		Title string `short:"t" help:"Chapter title" required:""`
	} `cmd:"" help:"Rebuild the chapter map for a directory of topics"`

	Export struct {
		Dir        string `short:"d" help:"Directory of generated topics" default:"./output"`
		Output     string `short:"o" help:"Zip file to write (defaults next to the directory)"`
		IncludeMap bool   `help:"Include the chapter map in the archive" default:"true" negatable:""`
	} `cmd:"" help:"Bundle a directory of generated files into a zip archive"`

	Draft struct {
		Input        string `short:"i" help:"Source document (txt, md, html, pdf, docx)" required:""`
		Product      string `help:"Product name for context"`
		Instructions string `help:"Extra instructions for the draft"`
	} `cmd:"" help:"Generate a first-draft topic body from a source document"`
}

func main() {
	godotenv.Load()
	ctx := kong.Parse(&CLI,
		kong.Name("ditagen"),
		kong.Description("DITA topic and chapter map generator"),
		kong.UsageOnError(),
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var err error
	switch ctx.Command() {
	case "serve":
		err = runServe(cfg)
	case "generate":
		err = runGenerate(log)
	case "map":
		err = runMap(log)
	case "export":
		err = runExport(log)
	case "draft":
		err = runDraft(cfg)
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func runServe(cfg config.Config) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws := workspace.NewManager(cfg.DataDir, cfg.WorkspaceTTL, log)
	ws.StartSweeper(ctx, cfg.SweepInterval)

	var drafter api.Drafter
	if cfg.DraftEnabled() {
		drafter = draft.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.DraftModel,
			cfg.DraftMaxTokens, cfg.SourceTokenBudget)
	} else {
		log.Warn("OPENAI_API_KEY not set, draft generation disabled")
	}

	srv := api.NewServer(ws, drafter, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting ditagen", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runGenerate(log *slog.Logger) error {
	ch, err := manifest.Load(CLI.Generate.Manifest)
	if err != nil {
		return err
	}
	items, err := ch.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("manifest has no topics")
	}

	// A standalone workspace gives the same duplicate checks the server
	// applies, rooted at the output flag as given.
	ws, err := workspace.At(CLI.Generate.Output)
	if err != nil {
		return err
	}

	for _, item := range items {
		topic, err := ws.Generate(workspace.TopicRequest{
			Type:         item.Type,
			Title:        item.Title,
			Shortdesc:    item.Shortdesc,
			BodyMarkdown: item.BodyMarkdown,
		})
		if err != nil {
			return fmt.Errorf("generate %q: %w", item.Title, err)
		}
		log.Info("generated", "file", topic.Filename)
	}

	name, _, err := ws.BuildMap(ch.Title)
	if err != nil {
		return err
	}
	log.Info("generated", "file", name)

	if CLI.Generate.Archive {
		data, err := ws.Export(true)
		if err != nil {
			return err
		}
		zipPath := ws.Dir + ".zip"
		if err := os.WriteFile(zipPath, data, 0o644); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		log.Info("archived", "file", zipPath)
	}
	log.Info("done", "dir", ws.Dir, "topics", len(items))
	return nil
}

func runMap(log *slog.Logger) error {
	entries, err := ditamap.FromDir(CLI.Map.Dir)
	if err != nil {
		return err
	}
	xml, err := ditamap.Build(CLI.Map.Title, entries)
	if err != nil {
		return err
	}
	name, err := ditamap.Filename(CLI.Map.Title)
	if err != nil {
		return err
	}
	path := filepath.Join(CLI.Map.Dir, name)
	if err := os.WriteFile(path, []byte(xml), 0o644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	log.Info("map written", "file", path, "topics", len(entries))
	return nil
}

func runExport(log *slog.Logger) error {
	data, err := archive.Build(CLI.Export.Dir, CLI.Export.IncludeMap)
	if err != nil {
		return err
	}
	out := CLI.Export.Output
	if out == "" {
		out = filepath.Base(CLI.Export.Dir) + "-files.zip"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	log.Info("archive written", "file", out, "bytes", len(data))
	return nil
}

func runDraft(cfg config.Config) error {
	if !cfg.DraftEnabled() {
		return fmt.Errorf("OPENAI_API_KEY is required for draft generation")
	}

	f, err := os.Open(CLI.Draft.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := source.Extract(f, filepath.Base(CLI.Draft.Input))
	if err != nil {
		return fmt.Errorf("extract source text: %w", err)
	}

	client := draft.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.DraftModel,
		cfg.DraftMaxTokens, cfg.SourceTokenBudget)
	text, err := client.GenerateDraft(context.Background(), draft.Request{
		Product:      CLI.Draft.Product,
		Instructions: CLI.Draft.Instructions,
		Source:       doc,
	})
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
