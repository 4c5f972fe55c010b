package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"latency-monitor/internal/config"
	"latency-monitor/internal/metrics"
	"latency-monitor/internal/models"
	"latency-monitor/internal/monitor"
	"latency-monitor/internal/notify"
	"latency-monitor/internal/ping"
	"latency-monitor/internal/web"
)

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "latency-monitor",
		Short: "Continuously monitor network latency to a target host",
		Long: `Network Latency Monitor: Continuously monitors network latency to a target IP/host and
logs statistics. Sends email alerts when packet loss is detected.

Mail credentials are read from GMAIL_USER, GMAIL_PASS and SYSTEM_ADMIN, either in the
process environment or in the file given by --env-file.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Build(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, out)
		},
	}

	flags.Register(cmd.Flags())
	return cmd
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logrus.SetLevel(lvl)
	}
}

func newProber(cfg config.Config) models.Prober {
	if cfg.Prober == config.ProberICMP {
		return ping.NewICMP(cfg.ProbeTimeout, cfg.Privileged)
	}
	return ping.NewExec(cfg.ProbeTimeout)
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := notify.NewMail(cfg.Mail)
	if !notifier.Configured() {
		logrus.Warn("GMAIL_USER or GMAIL_PASS not set, alerts will be skipped")
	}

	g, ctx := errgroup.WithContext(ctx)

	var recorder models.Recorder = metrics.Nop{}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.New(reg, cfg.Target)

		srv := web.New(cfg.MetricsAddr, reg)
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	mon := monitor.New(cfg, newProber(cfg), notifier, recorder, out)
	g.Go(func() error {
		err := mon.Run(ctx)
		stop()
		return err
	})

	return g.Wait()
}
