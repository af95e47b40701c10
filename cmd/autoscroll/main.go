package main

import (
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/autoscroll/internal/cli"
	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/safego"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	startPprof(os.Getenv("AUTOSCROLL_PPROF"))
	code := cli.Run(os.Args[1:], cli.Env{
		Version: version,
		Commit:  commit,
		Date:    date,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Interactive: shouldLaunchTUI(
			term.IsTerminal(os.Stdin.Fd()),
			term.IsTerminal(os.Stdout.Fd()),
		),
	})
	os.Exit(code)
}

func shouldLaunchTUI(stdinIsTTY, stdoutIsTTY bool) bool {
	return stdinIsTTY && stdoutIsTTY
}

// pprofAddr maps the AUTOSCROLL_PPROF value to a listen address. Empty and
// false-like values disable the server.
func pprofAddr(raw string) string {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "0", "false", "no":
		return ""
	case "1", "true":
		return "127.0.0.1:6060"
	}
	if _, err := strconv.Atoi(raw); err == nil {
		return "127.0.0.1:" + raw
	}
	return raw
}

func startPprof(raw string) {
	addr := pprofAddr(raw)
	if addr == "" {
		return
	}
	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}
