package domain

import "time"

// SessionType is either a checkin or a checkout.
type SessionType string

const (
	SessionCheckin  SessionType = "checkin"
	SessionCheckout SessionType = "checkout"
)

// SessionStatus is the lifecycle status of a work session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// WorkSession represents a worker's presence at a desk.
//
// An opening checkin claims its desk as the user's opening desk; secondary checkins at
// other desks borrow the opening desk's balance authority. A checkout references the
// checkin it closes through SessionToCloseID.
type WorkSession struct {
	SessionID        string        `json:"sessionID"`
	UserID           string        `json:"userID"`
	DeskID           string        `json:"deskID"`
	Type             SessionType   `json:"type"`
	Status           SessionStatus `json:"status"`
	OpeningDeskID    string        `json:"openingDeskID"`
	IsOpening        bool          `json:"isOpening"`        // true when the session belongs to the opening desk
	SessionToCloseID *string       `json:"sessionToCloseID"` // checkout -> checkin
	ClosingSessionID *string       `json:"closingSessionID"` // checkin -> pending checkout
	ChecksStarted    bool          `json:"checksStarted"`
	ChecksEnded      bool          `json:"checksEnded"`
	StartedAt        time.Time     `json:"startedAt"`
	ClosedAt         *time.Time    `json:"closedAt"`
}

// IsOpen reports whether the session is still open.
func (s WorkSession) IsOpen() bool {
	return s.Status == SessionOpen
}

// Reconciled reports whether the session's balance check has completed.
func (s WorkSession) Reconciled() bool {
	return s.ChecksStarted && s.ChecksEnded
}

// SessionContext is the explicit "who, where, under which session" value passed to
// settlement and transfer calls.
type SessionContext struct {
	UserID        string `json:"userID"`
	DeskID        string `json:"deskID"`        // desk the user is currently working at
	SessionID     string `json:"sessionID"`     // open checkin at DeskID
	OpeningDeskID string `json:"openingDeskID"` // desk whose ledger is affected
	IsAdmin       bool   `json:"isAdmin"`
}
