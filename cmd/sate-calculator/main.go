// cmd/sate-calculator/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sate-calculator/internal/common/cache"
	"sate-calculator/internal/common/config"
	apperrors "sate-calculator/internal/common/errors"
	"sate-calculator/internal/common/logger"
	"sate-calculator/internal/common/metrics"
	"sate-calculator/internal/common/notify"
	"sate-calculator/internal/models"
	"sate-calculator/internal/pipeline"
)

const (
	exitOK         = 0
	exitError      = 1
	exitValidation = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		help(stderr)
		return exitError
	}

	switch args[0] {
	case "estimate":
		return runEstimate(ctx, args[1:], stdin, stdout, stderr)
	case "submit":
		return runSubmit(ctx, args[1:], stdin, stdout, stderr)
	case "toggle-combine":
		return runToggleCombine(args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		help(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		help(stderr)
		return exitError
	}
}

func runEstimate(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "-", "Building JSON file (- for stdin)")
	configPath := fs.String("config", "", "Config file (default: configs/config.yaml)")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	var building models.BuildingAttributes
	if err := readJSON(*input, stdin, &building); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	env, err := setup(ctx, *configPath, pipeline.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer env.close(ctx)

	out, err := env.runner.Estimate(ctx, building)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return printJSON(stdout, stderr, out.Result)
}

func runSubmit(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "-", "Submission JSON file with building and lead (- for stdin)")
	configPath := fs.String("config", "", "Config file (default: configs/config.yaml)")
	dryRun := fs.Bool("dry-run", false, "Build the export record without delivering it")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	var sub models.Submission
	if err := readJSON(*input, stdin, &sub); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	env, err := setup(ctx, *configPath, pipeline.Options{DryRun: *dryRun})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer env.close(ctx)

	report, err := env.runner.Submit(ctx, sub)
	if err != nil {
		if stdErr, ok := apperrors.As(err); ok && stdErr.Code == apperrors.ErrCodeSubmissionInvalid {
			fmt.Fprintln(stderr, "Submission rejected:")
			printJSON(stderr, stderr, stdErr)
			return exitValidation
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if report.Delivery != nil && !report.Delivery.Delivered {
		fmt.Fprintf(stderr, "Warning: lead not delivered: %s\n", report.Delivery.Error)
	}
	if report.ExportError != "" {
		fmt.Fprintf(stderr, "Warning: export record not built: %s\n", report.ExportError)
	}
	return printJSON(stdout, stderr, report)
}

func runToggleCombine(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("toggle-combine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "-", "Building JSON file (- for stdin)")
	option := fs.String("option", "", "Option to toggle: windows, roof or none")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	opt, err := models.ParseCombineOption(*option)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	var building models.BuildingAttributes
	if err := readJSON(*input, stdin, &building); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	building.Combine = building.Combine.Toggle(opt)
	return printJSON(stdout, stderr, building)
}

// environment holds what the pipeline commands share.
type environment struct {
	cfg    *config.Config
	log    logger.Logger
	runner *pipeline.Runner
	redis  *cache.RedisClient
}

func setup(ctx context.Context, configPath string, opts pipeline.Options) (*environment, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output).
		WithFields(map[string]interface{}{"app": cfg.App.Name, "env": cfg.App.Environment})
	env := &environment{cfg: cfg, log: log}

	if cfg.Cache.Enabled {
		rc := cache.NewRedis(cfg.Cache)
		err := retryWithBackoff(func() error {
			return rc.Ping(ctx)
		}, 3, 200*time.Millisecond, log, "Redis connection")
		if err != nil {
			log.Warn("estimate cache disabled", map[string]interface{}{"error": err.Error()})
			_ = rc.Close()
		} else {
			env.redis = rc
			opts.Cache = cache.NewStore(rc.Client, cfg.Cache.Prefix, cfg.CacheTTL())
		}
	}

	notifier, err := notify.NewFromConfig(ctx, cfg.Alerts)
	if err != nil {
		log.Warn("sales alerts disabled", map[string]interface{}{"error": err.Error()})
	} else if notifier.Enabled() {
		opts.Alerter = notifier
	}

	runner, err := pipeline.New(cfg, opts, log)
	if err != nil {
		env.close(ctx)
		return nil, err
	}
	env.runner = runner
	return env, nil
}

func (e *environment) close(ctx context.Context) {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if err := metrics.Push(ctx, e.cfg.Metrics.PushgatewayURL, e.cfg.Metrics.Job); err != nil {
		e.log.Warn("metrics push failed", map[string]interface{}{"error": err.Error()})
	}
	_ = e.log.Sync()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func readJSON(path string, stdin io.Reader, dst interface{}) error {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func printJSON(w, stderr io.Writer, v interface{}) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "Error: encode output: %v\n", err)
		return exitError
	}
	return exitOK
}

func help(w io.Writer) {
	fmt.Fprintln(w, `SATE facade renovation estimator

Usage:
  sate-calculator estimate -input building.json [-config path]
  sate-calculator submit -input submission.json [-dry-run] [-config path]
  sate-calculator toggle-combine -input building.json -option windows|roof|none

Exit codes:
  0  success (delivery failures are reported as warnings)
  1  usage, input or configuration error
  2  submission failed validation`)
}
