package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goliatone/go-formfield/internal/config"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/html"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
	"github.com/goliatone/go-formfield/pkg/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "formfield-cli: %v\n", err)
		os.Exit(1)
	}
}

// run parses args on top of the environment config and renders one form.
// driver replaces the terminal prompts of the tui renderer when non-nil.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) error {
	envFile := ""
	flags := flag.NewFlagSet("formfield-cli", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&envFile, "env", "", "dotenv file to load before reading FORMFIELD_* variables")
	sourceFlag := flags.String("source", "", "descriptor or OpenAPI document path or URL (FORMFIELD_SOURCE)")
	formFlag := flags.String("form", "", "descriptor form id or OpenAPI operation id (FORMFIELD_FORM)")
	rendererFlag := flags.String("renderer", "", "renderer to use: html or tui (FORMFIELD_RENDERER)")
	outputFlag := flags.String("output", "", "output file, stdout when empty (FORMFIELD_OUTPUT)")
	validate := flags.Bool("validate", false, "validate before rendering so errors are shown")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var (
		cfg config.Config
		err error
	)
	if envFile != "" {
		cfg, err = config.Load(envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	override(&cfg.Source, *sourceFlag)
	override(&cfg.Form, *formFlag)
	override(&cfg.Renderer, *rendererFlag)
	override(&cfg.Output, *outputFlag)

	logger, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}

	src, err := source.Detect(cfg.Source)
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return err
	}
	registry.MustRegister(htmlRenderer)

	tuiOptions := []tui.Option{
		tui.WithOutputFormat(tui.OutputFormat(cfg.TUIFormat)),
		tui.WithMaxAttempts(cfg.MaxAttempts),
	}
	if driver == nil {
		driver = tui.NewSurveyDriver(stderr)
	}
	tuiOptions = append(tuiOptions, tui.WithPromptDriver(driver))
	tuiRenderer, err := tui.New(tuiOptions...)
	if err != nil {
		return err
	}
	registry.MustRegister(tuiRenderer)

	gen := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoader(source.NewLoader(source.WithHTTPFallback(cfg.HTTPTimeout))),
	)
	out, err := gen.Generate(ctx, orchestrator.Request{
		Source:   src,
		FormID:   cfg.Form,
		Renderer: cfg.Renderer,
		Validate: *validate,
	})
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err = fmt.Fprintln(stdout, string(out))
		return err
	}
	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("form written", "path", cfg.Output, "form", cfg.Form)
	return nil
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}
