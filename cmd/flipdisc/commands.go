package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-flipdisc"
	"github.com/coreman2200/funtimes-flipdisc/bus"
	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/frame"
	"github.com/coreman2200/funtimes-flipdisc/internal/loop"
	"github.com/coreman2200/funtimes-flipdisc/internal/ws"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var errUsage = errors.New("bad argument")

var discCmd = &cobra.Command{
	Use:   "disc TYPE OCCURRENCE DISC on|off",
	Short: "Flip one disc (DISC counts from 0)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseFlip(args)
		if err != nil {
			return err
		}
		return run(cmd, func(s *session) error { return s.ctl.Flip(r) })
	},
}

var showCmd = &cobra.Command{
	Use:   "show TYPE OCCURRENCE GLYPH",
	Short: "Draw a glyph on a 7-segment or 3x5 module",
	Long: `Draw a glyph on a D7SEG or D3X5 module. GLYPH is a digit, a letter,
a symbol name (ALL, CLR, DEG, HLM, ...) or a numeric code.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := profile.ParseType(args[0])
		if err != nil {
			return err
		}
		occ, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("occurrence %q: %w", args[1], errUsage)
		}
		code, err := glyph(args[2])
		if err != nil {
			return err
		}
		return run(cmd, func(s *session) error {
			if t == profile.D7SEG {
				return s.ctl.Seg7(occ).Show(code)
			}
			return s.ctl.Matrix(t, occ).Show(code)
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set TYPE OCCURRENCE STATE...",
	Short: "Set the discs of a module in order: 1 on, 0 off, - keep",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := profile.ParseType(args[0])
		if err != nil {
			return err
		}
		occ, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("occurrence %q: %w", args[1], errUsage)
		}
		var states []flipdisc.DotState
		for _, a := range args[2:] {
			switch a {
			case "1", "on":
				states = append(states, flipdisc.On)
			case "0", "off":
				states = append(states, flipdisc.Off)
			case "-", "keep":
				states = append(states, flipdisc.Keep)
			default:
				return fmt.Errorf("state %q: %w", a, errUsage)
			}
		}
		return run(cmd, func(s *session) error { return s.ctl.Line(t, occ).Set(states...) })
	},
}

var pixelCmd = &cobra.Command{
	Use:   "pixel TYPE OCCURRENCE ROW COL on|off",
	Short: "Flip the disc at ROW, COL (both from 1) of a matrix module",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := profile.ParseType(args[0])
		if err != nil {
			return err
		}
		var n [3]int
		for i, a := range args[1:4] {
			if n[i], err = strconv.Atoi(a); err != nil {
				return fmt.Errorf("%q: %w", a, errUsage)
			}
		}
		on, err := side(args[4])
		if err != nil {
			return err
		}
		return run(cmd, func(s *session) error { return s.ctl.Matrix(t, n[0]).Pixel(n[1], n[2], on) })
	},
}

var digitsCmd = &cobra.Command{
	Use:   "digits GLYPH...",
	Short: "Show one glyph per 7-segment module; _ skips a module",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes, err := glyphs(args)
		if err != nil {
			return err
		}
		return run(cmd, func(s *session) error { return s.ctl.Digits(codes...) })
	},
}

var textCmd = &cobra.Command{
	Use:   "text GLYPH...",
	Short: "Show one glyph per 3x5 module; _ skips a module",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes, err := glyphs(args)
		if err != nil {
			return err
		}
		return run(cmd, func(s *session) error { return s.ctl.Text(codes...) })
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Flip every disc to the color side",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(s *session) error { return s.ctl.All() })
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Flip every disc to the black side",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(s *session) error { return s.ctl.Clear() })
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Clear, set and clear the whole chain at a 100 ms flip delay",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(s *session) error { return s.ctl.Test() })
	},
}

var sweepRepeat bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Flip each disc on and off in turn",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(s *session) error {
			step := func(ctx context.Context, _ time.Duration) error {
				if err := s.ctl.Sweep(ctx); err != nil {
					return err
				}
				s.draw()
				if !sweepRepeat {
					return loop.ErrDone
				}
				return nil
			}
			return loop.New(time.Millisecond, step, log.Logger).Start(cmd.Context())
		})
	},
}

var clock24 bool

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show the time as HH:MM on the first four 7-segment modules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(s *session) error {
			last := ""
			step := func(ctx context.Context, _ time.Duration) error {
				now := clockDigits(time.Now(), clock24)
				if now == last {
					return nil
				}
				codes := make([]int, len(now))
				for i, r := range now {
					codes[i] = int(r - '0')
				}
				if err := s.ctl.Digits(codes...); err != nil {
					return err
				}
				last = now
				s.draw()
				log.Debug().Str("time", now).Msg("clock")
				return nil
			}
			return loop.New(time.Second, step, log.Logger).Start(cmd.Context())
		})
	},
}

func clockDigits(t time.Time, h24 bool) string {
	h := t.Hour()
	if !h24 {
		h %= 12
		if h == 0 {
			h = 12
		}
	}
	return fmt.Sprintf("%02d%02d", h, t.Minute())
}

var frameCmd = &cobra.Command{
	Use:   "frame TYPE OCCURRENCE DISC on|off",
	Short: "Print the bytes a flip would shift out, without touching hardware",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		r, err := parseFlip(args)
		if err != nil {
			return err
		}
		prof, err := profile.Lookup(cfg.Profile)
		if err != nil {
			return err
		}
		c := chain.New(prof, cfg.Chain...)
		shape, ok := prof.Shape(r.Type)
		if !ok {
			return fmt.Errorf("%s: %w", r.Type, flipdisc.ErrNoShape)
		}
		ctl, err := shape.Control(r.Disc, r.On)
		if err != nil {
			return err
		}
		rec := &bus.Recorder{}
		comp := frame.NewComposer(c, rec)
		if err := comp.Transmit(r.Type, r.Occurrence, ctl); err != nil {
			return err
		}
		if err := comp.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chain %s, %d bytes per frame\n", c, c.FrameLength())
		fmt.Fprint(cmd.OutOrStdout(), rec.Dump())
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the control websocket and health endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := open(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		h := ws.NewServer(s.ctl, s.rig.Driver, s.rig.Preview, log.Logger)
		srv := &http.Server{
			Addr:         s.cfg.Listen,
			Handler:      h.Handler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  60 * time.Second,
		}
		errc := make(chan error, 1)
		go func() {
			log.Info().Str("addr", s.cfg.Listen).Str("driver", s.rig.Driver).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errc <- err
			}
		}()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
		case err := <-errc:
			return fmt.Errorf("http server: %w", err)
		}
		return srv.Close()
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepRepeat, "repeat", false, "sweep until interrupted")
	clockCmd.Flags().BoolVar(&clock24, "24h", true, "24 hour display")

	rootCmd.AddCommand(discCmd, showCmd, setCmd, pixelCmd, digitsCmd, textCmd,
		allCmd, clearCmd, testCmd, sweepCmd, clockCmd, frameCmd, serveCmd)
}

func parseFlip(args []string) (flipdisc.FlipRequest, error) {
	var r flipdisc.FlipRequest
	t, err := profile.ParseType(args[0])
	if err != nil {
		return r, err
	}
	occ, err := strconv.Atoi(args[1])
	if err != nil {
		return r, fmt.Errorf("occurrence %q: %w", args[1], errUsage)
	}
	disc, err := strconv.Atoi(args[2])
	if err != nil {
		return r, fmt.Errorf("disc %q: %w", args[2], errUsage)
	}
	on, err := side(args[3])
	if err != nil {
		return r, err
	}
	return flipdisc.FlipRequest{Type: t, Occurrence: occ, Disc: disc, On: on}, nil
}

func side(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "color":
		return true, nil
	case "off", "0", "black":
		return false, nil
	}
	return false, fmt.Errorf("side %q: %w", s, errUsage)
}

func glyph(s string) (int, error) {
	if s == "_" {
		return profile.NoData, nil
	}
	code, ok := profile.GlyphCode(s)
	if !ok {
		return 0, fmt.Errorf("glyph %q: %w", s, flipdisc.ErrNoGlyph)
	}
	return code, nil
}

func glyphs(args []string) ([]int, error) {
	codes := make([]int, 0, len(args))
	for _, a := range args {
		c, err := glyph(a)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, nil
}
