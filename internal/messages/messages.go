package messages

import (
	"github.com/andyrewlee/autoscroll/internal/config"
)

// ItemsLoaded is sent when the item list has been (re)read.
type ItemsLoaded struct {
	Items []config.Item
	Path  string
}

// ConfigLoaded is sent when the config file has been (re)read.
type ConfigLoaded struct {
	Config *config.Config
	Notes  []string
}

// FileChanged is sent by the watcher after a watched file settles.
type FileChanged struct {
	Path string
}

// ToggleHelp requests toggling the key hint bar
type ToggleHelp struct{}

// Copied reports the text placed on the clipboard.
type Copied struct {
	Text string
}

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast requests a toast notification in the UI.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error represents an application error
type Error struct {
	Err     error
	Context string
	// Logged is set when the error was already written to the log.
	Logged bool
}

func (e Error) Error() string {
	if e.Err == nil {
		return e.Context
	}
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}
