// Package resolve implements the alert resolution workflow: a short-lived
// form state machine that validates a three-field submission and issues a
// single multipart resolve request.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/forestwatch/forestwatch/client"
)

// Threat classifications accepted by the resolve endpoint.
const (
	ThreatReal  = "real"
	ThreatFalse = "false"
)

// fallbackMessage is shown when the server reports a failure without a
// usable detail string.
const fallbackMessage = "Failed to resolve alert. Please try again."

// ErrSubmitInFlight indicates Submit was called while a previous attempt
// was still running. Exactly one request is issued per attempt.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// ValidationError is a local, field-specific, pre-submit failure. It never
// reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Submission is the ephemeral draft of one alert resolution.
type Submission struct {
	ThreatType string
	Details    string
	Filename   string
	MediaType  string
	File       io.Reader
}

// Validate checks the three required fields. Reasons use the strings shown
// to the operator.
func (s Submission) Validate() error {
	switch s.ThreatType {
	case "":
		return &ValidationError{Field: "threat_type", Reason: "Please select threat type"}
	case ThreatReal, ThreatFalse:
	default:
		return &ValidationError{
			Field:  "threat_type",
			Reason: fmt.Sprintf("Threat type must be %q or %q", ThreatReal, ThreatFalse),
		}
	}
	if strings.TrimSpace(s.Details) == "" {
		return &ValidationError{Field: "details", Reason: "Please enter details"}
	}
	if s.File == nil {
		return &ValidationError{Field: "file", Reason: "Please upload an image"}
	}
	if !strings.HasPrefix(s.MediaType, "image/") {
		return &ValidationError{Field: "file", Reason: "Please upload an image file"}
	}
	return nil
}

// State is the workflow state.
type State int

const (
	// StateEditing: the draft is open for changes.
	StateEditing State = iota
	// StateSubmitting: one resolve request is in flight.
	StateSubmitting
	// StateSucceeded: the alert was resolved and the caller notified.
	StateSucceeded
	// StateFailed: the last attempt failed; the draft is intact and may
	// be corrected and resubmitted.
	StateFailed
)

// Resolver issues the resolve request. *client.Client satisfies it.
type Resolver interface {
	ResolveAlert(ctx context.Context, id int, threatType, details, filename, mediaType string, file io.Reader) (client.Alert, error)
}

// Workflow drives the resolution of one alert. onResolved is invoked
// exactly once, after a successful submission; the caller is expected to
// refresh its alert list from the server — the workflow never mutates any
// local cache.
type Workflow struct {
	resolver   Resolver
	alertID    int
	onResolved func()

	state  State
	reason string
}

// NewWorkflow creates a workflow for the given alert in StateEditing.
func NewWorkflow(r Resolver, alertID int, onResolved func()) *Workflow {
	return &Workflow{resolver: r, alertID: alertID, onResolved: onResolved, state: StateEditing}
}

// State returns the current workflow state.
func (w *Workflow) State() State { return w.state }

// FailureReason returns the message from the last failed attempt, empty
// otherwise.
func (w *Workflow) FailureReason() string { return w.reason }

// Submit validates the draft and, if valid, issues exactly one resolve
// request. Validation failures leave the workflow in StateEditing with no
// network call made. A server or transport failure moves it to StateFailed
// with the server's detail string when one was provided; the draft stays
// intact for correction. Success moves it to StateSucceeded and notifies
// the caller.
func (w *Workflow) Submit(ctx context.Context, sub Submission) (client.Alert, error) {
	if w.state == StateSubmitting {
		return client.Alert{}, ErrSubmitInFlight
	}
	if err := sub.Validate(); err != nil {
		w.state = StateEditing
		return client.Alert{}, err
	}

	w.state = StateSubmitting
	alert, err := w.resolver.ResolveAlert(ctx, w.alertID, sub.ThreatType, sub.Details, sub.Filename, sub.MediaType, sub.File)
	if err != nil {
		w.state = StateFailed
		w.reason = failureReason(err)
		return client.Alert{}, err
	}

	w.state = StateSucceeded
	w.reason = ""
	if w.onResolved != nil {
		w.onResolved()
	}
	return alert, nil
}

func failureReason(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallbackMessage
}
