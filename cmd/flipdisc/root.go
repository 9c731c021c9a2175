package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-flipdisc"
	"github.com/coreman2200/funtimes-flipdisc/internal/config"
	"github.com/coreman2200/funtimes-flipdisc/internal/hw"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var (
	configPath string
	driver     string
	chainFlag  string
	delayMs    int
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "flipdisc",
	Short: "Drive a chain of flip-disc modules",
	Long: `flipdisc drives up to eight flip-disc modules daisy chained on one
shift-register bus, pulsing each disc through the charge/release supply.

The chain is declared nearest module first:
  flipdisc --chain D7SEG,D3X1,D7SEG disc D7SEG 2 5 on

Settings come from the config file (default flipdisc.yaml, optional).
Flags given on the command line override it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "flipdisc.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&driver, "driver", "d", "", "driver: spi | bitbang | serial | sim")
	rootCmd.PersistentFlags().StringVar(&chainFlag, "chain", "", "comma separated module types, nearest first")
	rootCmd.PersistentFlags().IntVar(&delayMs, "delay", 0, "flip delay in ms (0..255)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace | debug | info | warn | error")
}

func Execute() error {
	return rootCmd.Execute()
}

// session is an opened rig with a configured controller on top.
type session struct {
	cfg *config.Config
	rig *hw.Rig
	ctl *flipdisc.Controller
}

func (s *session) Close() error {
	return s.rig.Close()
}

// draw refreshes the hardware preview, if one is attached.
func (s *session) draw() {
	if s.rig.Preview == nil {
		return
	}
	if err := s.ctl.Board().Draw(s.rig.Preview); err != nil {
		log.Debug().Err(err).Msg("preview")
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		switch {
		case err == nil:
			cfg = c
		case cmd.Flags().Changed("config") || !os.IsNotExist(err):
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = driver
	}
	if flags.Changed("chain") {
		types, err := parseChain(chainFlag)
		if err != nil {
			return nil, err
		}
		cfg.Chain = types
	}
	if flags.Changed("delay") {
		cfg.FlipDelayMs = delayMs
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func parseChain(s string) ([]profile.Type, error) {
	var types []profile.Type
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		t, err := profile.ParseType(f)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func setupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// open loads the config, brings up the rig and configures the chain.
func open(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	rig, err := hw.Open(cfg, log.Logger)
	if err != nil {
		return nil, err
	}
	ctl := flipdisc.New(rig.Transport, rig.Seq,
		flipdisc.WithProfile(rig.Profile),
		flipdisc.WithLogger(log.Logger),
		flipdisc.WithBoard(rig.NewBoard()),
	)
	if err := ctl.Configure(cfg.Chain...); err != nil {
		rig.Close()
		return nil, fmt.Errorf("configure: %w", err)
	}
	s := &session{cfg: cfg, rig: rig, ctl: ctl}
	s.draw()
	return s, nil
}

// run opens a session, calls fn and redraws the preview.
func run(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := open(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := fn(s); err != nil {
		return err
	}
	s.draw()
	return nil
}
