package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/autoscroll/internal/clock"
	"github.com/andyrewlee/autoscroll/internal/logging"
)

// Sample is the scroller state after one simulated frame.
type Sample struct {
	Frame  int     `json:"frame" yaml:"frame"`
	TimeMS int64   `json:"time_ms" yaml:"time_ms"`
	Phase  string  `json:"phase" yaml:"phase"`
	Offset float64 `json:"offset" yaml:"offset"`
	Item   string  `json:"item,omitempty" yaml:"item,omitempty"`
	Event  string  `json:"event,omitempty" yaml:"event,omitempty"`
}

// simEvent is one scripted input, applied before the frame is sampled.
type simEvent struct {
	frame int
	kind  string
	arg   string
}

func (e simEvent) String() string {
	if e.arg == "" {
		return e.kind
	}
	return e.kind + ":" + e.arg
}

var simEventKinds = map[string]bool{
	"hover": true, "leave": true, "wheel": true,
	"stop": true, "start": true, "reset": true, "resize": true,
}

// parseEvents reads a comma separated script such as
// "hover@10,leave@40,wheel@50:3,resize@60:40x2".
func parseEvents(script string) ([]simEvent, error) {
	var events []simEvent
	for _, part := range strings.Split(script, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, rest, ok := strings.Cut(part, "@")
		if !ok {
			return nil, fmt.Errorf("event %q: missing @frame", part)
		}
		kind = strings.ToLower(strings.TrimSpace(kind))
		if !simEventKinds[kind] {
			return nil, fmt.Errorf("event %q: unknown kind %q", part, kind)
		}
		at, arg, _ := strings.Cut(rest, ":")
		frame, err := strconv.Atoi(strings.TrimSpace(at))
		if err != nil || frame < 0 {
			return nil, fmt.Errorf("event %q: bad frame %q", part, at)
		}
		ev := simEvent{frame: frame, kind: kind, arg: strings.TrimSpace(arg)}
		if err := ev.validate(); err != nil {
			return nil, fmt.Errorf("event %q: %w", part, err)
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].frame < events[j].frame })
	return events, nil
}

func (e simEvent) validate() error {
	switch e.kind {
	case "wheel":
		if e.arg == "" {
			return nil
		}
		_, err := strconv.ParseFloat(e.arg, 64)
		return err
	case "resize":
		_, _, err := parseSize(e.arg)
		return err
	}
	return nil
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	return w, h, nil
}

func (h *headless) applyEvent(e simEvent) {
	switch e.kind {
	case "hover":
		h.scroller.HoverEnter()
	case "leave":
		h.scroller.HoverLeave()
	case "wheel":
		n := 1.0
		if e.arg != "" {
			n, _ = strconv.ParseFloat(e.arg, 64)
		}
		h.wheel(n)
	case "stop":
		h.scroller.Stop()
	case "start":
		h.scroller.Start()
	case "reset":
		h.scroller.InitData()
	case "resize":
		w, hh, _ := parseSize(e.arg)
		h.resize(w, hh)
	}
}

type simulateOptions struct {
	frames int
	width  int
	height int
	every  int
	events string
	format string
}

// simulate runs frames frames of virtual time and returns the samples.
// Frame 0 is the state right after mounting.
func simulate(s *settings, opts simulateOptions) ([]Sample, error) {
	events, err := parseEvents(opts.events)
	if err != nil {
		return nil, err
	}
	every := max(opts.every, 1)
	start := time.Unix(0, 0)
	clk := clock.NewManual(start)
	h := newHeadless(s.cfg, s.items, clk, opts.width, opts.height)
	defer h.scroller.Close()

	interval := s.cfg.Scroll.FrameInterval
	var samples []Sample
	next := 0
	for frame := 0; frame <= opts.frames; frame++ {
		if frame > 0 {
			clk.Advance(interval)
		}
		var applied []string
		for next < len(events) && events[next].frame == frame {
			h.applyEvent(events[next])
			applied = append(applied, events[next].String())
			next++
		}
		if frame%every != 0 && len(applied) == 0 {
			continue
		}
		samples = append(samples, Sample{
			Frame:  frame,
			TimeMS: clk.Now().Sub(start).Milliseconds(),
			Phase:  h.scroller.Phase().String(),
			Offset: h.scroller.Offset(),
			Item:   h.currentText(),
			Event:  strings.Join(applied, ","),
		})
	}
	logging.Debug("simulated %d frames, %d samples", opts.frames, len(samples))
	return samples, nil
}

func writeSamples(w io.Writer, format string, samples []Sample) error {
	switch format {
	case "", "jsonl":
		enc := json.NewEncoder(w)
		for _, s := range samples {
			if err := enc.Encode(s); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(samples); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		for _, s := range samples {
			fmt.Fprintf(w, "%5d %7dms %-8s %9.2f  %s\n", s.Frame, s.TimeMS, s.Phase, s.Offset, s.Item)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q (want jsonl, yaml or text)", format)
}

func buildSimulateCommand(env Env, flags *globalFlags) *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the ticker in virtual time and print its state per frame",
		Long: `Run the ticker in virtual time and print its state per frame.

Events script input at given frames:
  hover@N  leave@N  wheel@N[:NOTCHES]  stop@N  start@N  reset@N  resize@N:WxH

Example:
  autoscroll simulate --frames 120 --events hover@30,leave@60,wheel@90:-2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load()
			if err != nil {
				return failCommand(env, flags, "simulate", "config_invalid", err)
			}
			logging.SetOutput(env.Stderr, s.logLevel())
			samples, err := simulate(s, opts)
			if err != nil {
				return failCommand(env, flags, "simulate", "usage", err)
			}
			if flags.json {
				PrintJSON(env.Stdout, "simulate", map[string]any{
					"notes":   s.notes,
					"samples": samples,
				}, env.Version)
				return nil
			}
			for _, note := range s.notes {
				logging.Warn("config: %s", note)
			}
			return writeSamples(env.Stdout, opts.format, samples)
		},
	}
	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 300, "Number of frames to simulate")
	cmd.Flags().IntVar(&opts.width, "width", 40, "Viewport width in cells")
	cmd.Flags().IntVar(&opts.height, "height", 5, "Viewport height in rows")
	cmd.Flags().IntVar(&opts.every, "every", 1, "Sample every N frames (event frames are always sampled)")
	cmd.Flags().StringVarP(&opts.events, "events", "e", "", "Scripted input events")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "jsonl", "Output format: jsonl, yaml or text")
	return cmd
}

// failCommand reports err in the requested output mode and maps it to an
// exit code.
func failCommand(env Env, flags *globalFlags, command, code string, err error) error {
	exit := ExitInternalError
	if code == "usage" {
		exit = ExitUsage
	}
	if flags.json {
		ReturnError(env.Stdout, command, code, err.Error(), nil, env.Version)
	} else {
		Errorf(env.Stderr, "%v", err)
	}
	return exitError{code: exit}
}
