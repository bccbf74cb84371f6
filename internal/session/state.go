// ABOUTME: Session states and user-facing alerts for the compute workflow.
// ABOUTME: AlertFor maps validation and store errors to acknowledge-to-dismiss messages.
package session

import (
	"errors"
	"fmt"

	"github.com/harperreed/bmi/internal/bmi"
	"github.com/harperreed/bmi/internal/storage"
)

// State is a step of the compute workflow.
type State int

const (
	Idle State = iota
	Editing
	Computing
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Computing:
		return "computing"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Alert is a blocking notification the shell shows until acknowledged.
type Alert struct {
	Title   string
	Message string
	// Fatal means the store is unusable for the rest of the session.
	Fatal bool
}

// Alerter surfaces alerts to the user.
type Alerter interface {
	Alert(a Alert)
}

// AlertFunc adapts a function to the Alerter interface.
type AlertFunc func(a Alert)

// Alert calls f(a).
func (f AlertFunc) Alert(a Alert) { f(a) }

// AlertFor builds the alert shown for err.
func AlertFor(err error) Alert {
	var verr *bmi.ValidationError
	if errors.As(err, &verr) {
		label := verr.Field.Label()
		switch verr.Kind {
		case bmi.Missing:
			return Alert{Title: "Error", Message: label + " is a required field"}
		case bmi.NotANumber:
			return Alert{Title: "Error", Message: label + " must be a number"}
		case bmi.NotPositive:
			return Alert{Title: "Error", Message: label + " must be greater than zero"}
		case bmi.OutOfRange:
			return Alert{Title: "Error", Message: label + " is out of range"}
		}
	}

	switch {
	case errors.Is(err, storage.ErrSchemaInitFailed):
		return Alert{
			Title:   "Storage unavailable",
			Message: "The measurement database could not be initialized. History cannot be saved this session.",
			Fatal:   true,
		}
	case errors.Is(err, storage.ErrWriteFailed):
		return Alert{Title: "Save failed", Message: "Could not save this measurement. Your inputs were kept; try again."}
	case errors.Is(err, storage.ErrReadFailed):
		return Alert{Title: "History unavailable", Message: "Could not load measurement history."}
	case errors.Is(err, storage.ErrClosed):
		return Alert{Title: "Storage closed", Message: "The measurement database is closed.", Fatal: true}
	}

	return Alert{Title: "Error", Message: err.Error()}
}
