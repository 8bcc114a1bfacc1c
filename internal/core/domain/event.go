package domain

import "time"

// EventKind identifies a notification emitted for the UI layer.
type EventKind string

const (
	EventIdenticalCurrencies EventKind = "identical_currencies"
	EventCrossConversion     EventKind = "cross_conversion_not_supported"
	EventInsufficientBalance EventKind = "insufficient_balance"
	EventRepeatedLine        EventKind = "repeated_line"
	EventShrinkageRecorded   EventKind = "shrinkage_recorded"
	EventDeskAlreadyLinked   EventKind = "desk_already_linked"
)

// Severity of an emitted event.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Event is a structured notification. Delivery is up to the configured notifier.
type Event struct {
	Kind       EventKind `json:"kind"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
	UserID     string    `json:"userID,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
