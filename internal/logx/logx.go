// Package logx holds the pslog helpers shared by tpane components.
package logx

import (
	"io"
	"strings"

	"pkt.systems/pslog"
)

// New returns a structured logger writing JSON lines to w at the named level.
func New(w io.Writer, level string) pslog.Logger {
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: ParseLevel(level),
	})
}

// Discard returns a logger that drops everything.
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.ErrorLevel,
	})
}

// ParseLevel maps a config level name to a pslog level; unknown names mean info.
func ParseLevel(name string) pslog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return pslog.DebugLevel
	case "warn", "warning":
		return pslog.WarnLevel
	case "error":
		return pslog.ErrorLevel
	default:
		return pslog.InfoLevel
	}
}

// OrDiscard returns log, or a discarding logger when log is nil.
func OrDiscard(log pslog.Logger) pslog.Logger {
	if log == nil {
		return Discard()
	}
	return log
}

// WithComponent annotates the logger with the component name.
func WithComponent(log pslog.Logger, name string) pslog.Logger {
	return OrDiscard(log).With("component", name)
}

// WithURI annotates the logger with a resource uri when present.
func WithURI(log pslog.Logger, uri string) pslog.Logger {
	if uri != "" {
		log = log.With("uri", uri)
	}
	return log
}

// WithView annotates the logger with view type and tab group when present.
func WithView(log pslog.Logger, viewType, tabGroupID string) pslog.Logger {
	if viewType != "" {
		log = log.With("view_type", viewType)
	}
	if tabGroupID != "" {
		log = log.With("tab_group", tabGroupID)
	}
	return log
}
