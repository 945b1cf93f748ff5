package monitor

import "time"

// Status is the last observed state of every backing component. A component
// that is not configured is reported as healthy and flagged as disabled.
type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Outbox     bool      `json:"outbox"`
	OutboxSize int       `json:"outbox_size"`
	Disabled   []string  `json:"disabled,omitempty"`
	LastCheck  time.Time `json:"last_check"`
}
