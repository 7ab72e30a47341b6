// Package history keeps an operational log of section renders. It records
// what happened on each render; rendered content is never stored.
package history

import "time"

// Trigger identifies what started a render.
type Trigger string

const (
	TriggerCLI  Trigger = "cli"
	TriggerHTTP Trigger = "http"
)

// Status is the outcome of one section render.
type Status string

const (
	// StatusOK means content was fetched and rendered.
	StatusOK Status = "ok"
	// StatusFallback means the section showed its fallback message.
	StatusFallback Status = "fallback"
)

// Run is a single section render record.
type Run struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Section     string        `json:"section"`
	ContentType string        `json:"content_type"`
	Trigger     Trigger       `json:"trigger"`
	Status      Status        `json:"status"`
	Items       int           `json:"items"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}
