package class

import (
	"fmt"
	"log/slog"
)

// Kind categorizes a non-fatal diagnostic.
type Kind int

const (
	// KindMisuse covers calls made in the wrong lifecycle state, such as a
	// second init or running a controller that is already running.
	KindMisuse Kind = iota
	// KindConfig covers invalid configuration: bad listeners, unknown class
	// names in declarative lists, sources that cannot be listened to.
	KindConfig
	// KindVeto records a before-hook that stopped a transition.
	KindVeto
)

func (k Kind) String() string {
	switch k {
	case KindMisuse:
		return "misuse"
	case KindConfig:
		return "config"
	case KindVeto:
		return "veto"
	default:
		return "unknown"
	}
}

// Event returns the instance event a diagnostic of this kind is triggered
// on: configuration problems go to "error", everything else to "debug".
func (k Kind) Event() string {
	if k == KindConfig {
		return EventError
	}
	return EventDebug
}

func (k Kind) level() slog.Level {
	switch k {
	case KindConfig:
		return slog.LevelError
	case KindMisuse:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

// Diagnostic events triggered on instances.
const (
	EventDebug = "debug"
	EventError = "error"
)

// Diagnostic describes a condition the framework detected and recovered from.
type Diagnostic struct {
	Kind    Kind
	Class   string
	Op      string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Class, d.Kind, d.Op, d.Message)
}
