package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"latency-monitor/internal/database"
	"latency-monitor/internal/logfile"
	"latency-monitor/internal/report"
)

type options struct {
	logPath string
	outDir  string
	target  string
	hours   int
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "latency-report",
		Short: "Summarise a latency monitor log into charts and a text report",
		Long: `Reads the append-only log written by latency-monitor and renders latency and
packet loss charts plus a summary with an hourly breakdown. The log itself is
never modified.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			dir, err := generate(opts, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.logPath, "log", "l", "latency_monitor.log", "Path to the log file")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "reports", "Directory to write the report into")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "8.8.8.8", "Target name used in chart titles")
	cmd.Flags().IntVar(&opts.hours, "hours", 0, "Only include the last N hours, 0 includes everything")
	return cmd
}

func generate(opts options, now time.Time) (string, error) {
	if opts.hours < 0 {
		return "", fmt.Errorf("hours cannot be negative")
	}

	records, skipped, err := logfile.ReadFile(opts.logPath)
	if err != nil {
		return "", err
	}
	if skipped > 0 {
		logrus.WithField("lines", skipped).Warn("Skipped lines that are not measurement records")
	}

	db, err := database.New(database.MemoryPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		return "", err
	}
	if err := db.SaveRecords(records); err != nil {
		return "", fmt.Errorf("load records: %w", err)
	}

	if opts.hours > 0 {
		cutoff := now.Add(-time.Duration(opts.hours) * time.Hour)
		pruned, err := db.Prune(cutoff)
		if err != nil {
			return "", fmt.Errorf("prune records: %w", err)
		}
		logrus.WithFields(logrus.Fields{"pruned": pruned, "cutoff": cutoff.Format(logfile.TimestampLayout)}).Debug("Pruned old records")
	}

	return report.NewGenerator(db, opts.target).GenerateReport(opts.outDir)
}
