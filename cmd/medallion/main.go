// Command medallion runs the employee data pipeline: bronze (raw store
// scan), silver (cleaning), gold (aggregation), or the full chain.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"medallion/pkg/audit"
	"medallion/pkg/config"
	"medallion/pkg/logging"
	"medallion/pkg/notify"
	"medallion/pkg/pipeline"
)

const usage = `usage: medallion [flags] <command>

commands:
  bronze   scan the raw store and report each CSV file
  silver   clean the raw table into the silver layer
  gold     aggregate the silver table into the gold artifacts
  run      silver then gold, fail-fast (default)
  notify   send (or print) a summary of the gold artifacts
  history  list recent runs from the audit store

flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("medallion", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.BronzeDir, "bronze-dir", cfg.BronzeDir, "raw store directory")
	fs.StringVar(&cfg.BronzeFile, "input", cfg.BronzeFile, "raw input CSV file name")
	fs.StringVar(&cfg.SilverDir, "silver-dir", cfg.SilverDir, "cleaned output directory")
	fs.StringVar(&cfg.SilverFile, "output", cfg.SilverFile, "cleaned output CSV file name")
	fs.StringVar(&cfg.GoldDir, "gold-dir", cfg.GoldDir, "gold artifact directory")
	fs.StringVar(&cfg.AuditDB, "audit-db", cfg.AuditDB, "SQLite audit store path (empty disables)")
	fs.IntVar(&cfg.TopEarners, "top", cfg.TopEarners, "number of top earners to rank")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	command := fs.Arg(0)
	if command == "" {
		command = "run"
	}

	var store *audit.Store
	if cfg.AuditDB != "" {
		store, err = audit.Open(cfg.AuditDB)
		if err != nil {
			return fmt.Errorf("open audit store: %w", err)
		}
		defer store.Close()
	}

	ctx := context.Background()
	p := pipeline.New(cfg, store)

	switch command {
	case "bronze":
		_, err = p.Bronze(ctx)
		return err
	case "silver":
		_, err = p.Silver(ctx)
		return err
	case "gold":
		_, err = p.Gold(ctx)
		return err
	case "run":
		_, err = p.Run(ctx)
		return err
	case "notify":
		return runNotify(ctx, cfg)
	case "history":
		return runHistory(ctx, store)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runNotify(ctx context.Context, cfg config.Config) error {
	body := notify.GoldSummary(cfg.GoldDir, time.Now())
	subject := "Employee Analytics Report - " + time.Now().Format("2006-01-02")

	if cfg.SMTPHost == "" {
		slog.Info("smtp not configured; printing summary")
		fmt.Println(body)
		return nil
	}

	notifier := &notify.SMTPNotifier{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.NotifyFrom,
		To:       cfg.NotifyTo,
	}
	if err := notifier.Notify(ctx, subject, body); err != nil {
		return err
	}
	slog.Info("notification sent", "to", cfg.NotifyTo)
	return nil
}

func runHistory(ctx context.Context, store *audit.Store) error {
	if store == nil {
		return fmt.Errorf("history requires an audit store; set -audit-db or MEDALLION_AUDIT_DB")
	}
	runs, err := store.Runs(ctx, 20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, r := range runs {
		status := "ok"
		if !r.Succeeded {
			status = "failed"
		}
		fmt.Printf("%s  %-6s  %-6s  %s  %s\n",
			r.StartedAt.Format(time.RFC3339), r.Stage, status, r.ID, r.StatsJSON)
	}
	return nil
}
