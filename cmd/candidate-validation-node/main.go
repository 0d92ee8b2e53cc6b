// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Command candidate-validation-node runs the candidate-validation subsystem as a
// standalone process: it wires the PVF reference host (C8) and the channel RuntimeAPI
// adapter (C9) around the core decision logic and drives the subsystem's message loop
// until it receives an interrupt.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	candidatevalidation "github.com/RainFallsSilent/polkadot/dot/parachain/candidate-validation"
	"github.com/RainFallsSilent/polkadot/dot/parachain/pvf"
	"github.com/RainFallsSilent/polkadot/internal/log"
)

var logLevels = map[string]log.Level{
	"error": log.LevelError,
	"warn":  log.LevelWarn,
	"info":  log.LevelInfo,
	"debug": log.LevelDebug,
	"trace": log.LevelTrace,
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "candidate-validation-node",
		Short: "Runs the parachain candidate-validation subsystem",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
				v.SetConfigFile(cfgFile)
			} else {
				v.SetConfigName("candidate-validation")
				v.AddConfigPath(".")
				v.AddConfigPath("/etc/candidate-validation")
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "path to a config file (toml, yaml, json)")
	flags.String("artifacts-cache-path", "", "directory for the PVF host's compiled artifacts")
	flags.String("program-path", "", "path to the PVF worker executable")
	flags.String("metrics-addr", "", "address to serve /metrics on (empty disables it)")
	flags.String("log-level", "info", "one of error, warn, info, debug, trace")

	v.SetEnvPrefix("CANDIDATE_VALIDATION")
	v.AutomaticEnv()
	_ = v.BindPFlag("artifacts_cache_path", flags.Lookup("artifacts-cache-path"))
	_ = v.BindPFlag("program_path", flags.Lookup("program-path"))
	_ = v.BindPFlag("metrics_addr", flags.Lookup("metrics-addr"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	return cmd
}

func run(ctx context.Context, cfg *Config) error {
	if level, ok := logLevels[cfg.LogLevel]; ok {
		log.SetGlobalLevel(level)
	}
	logger := log.NewFromGlobal(log.AddContext("pkg", "candidate-validation-node"))
	logger.Infof("starting with artifacts cache %s, program %s", cfg.ArtifactsCachePath, cfg.ProgramPath)

	registry := prometheus.NewRegistry()
	metrics := candidatevalidation.NewMetrics(registry)
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, registry, logger)
	}

	host := pvf.NewReferenceHost(ctx)
	defer func() {
		if err := host.Close(ctx); err != nil {
			logger.Warnf("closing PVF host: %s", err)
		}
	}()

	exhaustive := candidatevalidation.NewExhaustiveValidator(host, logger, metrics)

	overseerToSubsystem := make(chan any)
	subsystemToOverseer := make(chan any)
	runtime := candidatevalidation.NewChannelRuntimeAPI(&chanSender{out: subsystemToOverseer})
	resolver := candidatevalidation.NewAssumptionResolver(runtime)
	chainState := candidatevalidation.NewChainStateValidator(resolver, exhaustive, runtime, metrics)

	subsystem := candidatevalidation.NewSubsystem(subsystemToOverseer, chainState, exhaustive)
	subsystem.OverseerToSubsystem = overseerToSubsystem
	subsystem.Run(ctx, nil, nil)
	logger.Infof("%s running", subsystem.Name())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Infof("shutting down, %d request(s) in flight", subsystem.InFlightCount())
	subsystem.Stop()
	return nil
}

// chanSender implements candidatevalidation.Sender by handing every outbound message to
// whatever is reading subsystemToOverseer — in this standalone process, a node's
// overseer implementation wired in from elsewhere; this binary only owns the
// candidate-validation side of that channel.
type chanSender struct {
	out chan<- any
}

func (c *chanSender) SendMessage(msg any) error {
	c.out <- msg
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Infof("serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Errorf("metrics server: %s", err)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
