package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formmask/pkg/binder"
	"github.com/goliatone/go-formmask/pkg/config"
	"github.com/goliatone/go-formmask/pkg/datetime"
	"github.com/goliatone/go-formmask/pkg/document"
	"github.com/goliatone/go-formmask/pkg/forms"
)

type options struct {
	input       string
	output      string
	class       string
	presets     string
	format      string
	preset      string
	sanitize    bool
	interactive bool
	monthFirst  bool
	verbose     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "HTML file to bind (stdin when \"-\")")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.class, "class", "", "marker class for the datetime preset")
	flag.StringVar(&opts.presets, "presets", "", "directory of preset files (.json, .yaml, .yml)")
	flag.StringVar(&opts.format, "format", "", "format a value with a preset and print it")
	flag.StringVar(&opts.preset, "preset", datetime.PresetName, "preset used by -format")
	flag.BoolVar(&opts.sanitize, "sanitize", false, "sanitize markup before binding")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for a start and end time")
	flag.BoolVar(&opts.monthFirst, "month-first", false, "read dates as MM/DD/YYYY")
	flag.BoolVar(&opts.verbose, "v", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(os.Stderr, opts.verbose)
	if err := run(context.Background(), opts, os.Stdin, os.Stdout, logger, surveyDriver{}); err != nil {
		logger.WithError(err).Fatal("formmask-cli failed")
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, logger logrus.FieldLogger, driver PromptDriver) error {
	registry, err := buildRegistry(opts, logger)
	if err != nil {
		return err
	}

	switch {
	case opts.format != "":
		return runFormat(opts, registry, stdout)
	case opts.interactive:
		return runInteractive(ctx, opts, registry, driver, stdout)
	case opts.input != "":
		return runBind(opts, registry, stdin, stdout, logger)
	default:
		return fmt.Errorf("formmask-cli: one of -input, -format or -interactive is required")
	}
}

func buildRegistry(opts options, logger logrus.FieldLogger) (*binder.Registry, error) {
	registry := binder.NewRegistry()
	if class := strings.TrimSpace(opts.class); class != "" {
		if err := registry.Register(binder.Preset{
			Name:   datetime.PresetName,
			Class:  class,
			Config: datetime.Config(),
		}, 100, nil); err != nil {
			return nil, err
		}
	}
	if opts.presets == "" {
		return registry, nil
	}

	store, err := config.LoadFS(os.DirFS(opts.presets))
	if err != nil {
		return nil, err
	}
	if err := store.Apply(registry); err != nil {
		return nil, err
	}
	for _, entry := range store.Entries() {
		logger.WithFields(logrus.Fields{
			"preset":   entry.Preset.Name,
			"class":    entry.Preset.Class,
			"priority": entry.Priority,
			"source":   entry.Source,
		}).Debug("preset loaded")
	}
	return registry, nil
}

func runFormat(opts options, registry *binder.Registry, stdout io.Writer) error {
	_, compiled, ok := registry.Lookup(opts.preset)
	if !ok {
		return fmt.Errorf("formmask-cli: unknown preset %q", opts.preset)
	}
	value := opts.format
	if opts.preset == datetime.PresetName {
		value = strings.ToUpper(value)
	}
	res := compiled.Apply(value)
	fmt.Fprintln(stdout, res.Value)
	if len(res.Rejected) > 0 {
		return fmt.Errorf("formmask-cli: %d character(s) rejected, first %q at position %d",
			len(res.Rejected), res.Rejected[0].Char, res.Rejected[0].Position)
	}
	return nil
}

func runBind(opts options, registry *binder.Registry, stdin io.Reader, stdout io.Writer, logger logrus.FieldLogger) error {
	var (
		data []byte
		err  error
	)
	if opts.input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(opts.input)
	}
	if err != nil {
		return fmt.Errorf("formmask-cli: read input: %w", err)
	}

	markup := string(data)
	if opts.sanitize {
		markup = binder.Sanitize(markup)
	}
	doc, err := document.ParseString(markup)
	if err != nil {
		return err
	}

	b := binder.New(binder.WithRegistry(registry), binder.WithLogger(logger))
	report, err := b.Ready(doc)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"bound":   len(report.Bound),
		"skipped": report.Skipped,
	}).Info("document bound")

	if opts.output == "" {
		_, err = io.WriteString(stdout, doc.String())
		return err
	}
	if dir := filepath.Dir(opts.output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("formmask-cli: create output dir: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, []byte(doc.String()), 0o644); err != nil {
		return fmt.Errorf("formmask-cli: write output: %w", err)
	}
	logger.WithField("output", opts.output).Info("output written")
	return nil
}

func runInteractive(ctx context.Context, opts options, registry *binder.Registry, driver PromptDriver, stdout io.Writer) error {
	var formOpts []forms.Option
	formOpts = append(formOpts, forms.WithRegistry(registry))
	if opts.monthFirst {
		formOpts = append(formOpts, forms.WithMonthFirst())
	}
	form := forms.NewEventForm(formOpts...)

	schedule, err := promptSchedule(ctx, driver, form, stdout, 3)
	if err != nil {
		return err
	}
	var parseOpts []datetime.Option
	if opts.monthFirst {
		parseOpts = append(parseOpts, datetime.WithMonthFirst())
	}
	fmt.Fprintf(stdout, "start: %s\n", datetime.Format(schedule.Start, parseOpts...))
	fmt.Fprintf(stdout, "end:   %s\n", datetime.Format(schedule.End, parseOpts...))
	return nil
}
