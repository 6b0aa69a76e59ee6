package notify

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// wireTimeLayout is the timestamp format the dashboards send and expect back.
const wireTimeLayout = "2006-01-02 15:04:05"

// Timestamp wraps time.Time so that SentTime round-trips in the dashboards'
// "YYYY-MM-DD HH:MM:SS" format. RFC 3339 input is accepted as well.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(wireTimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{wireTimeLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}

// Alert is an urgent notification posted by a staff member, carrying a
// recommended response protocol and an urgency level from 1 to 5.
type Alert struct {
	ID           int64     `db:"id" json:"AlertID"`
	Message      string    `db:"body" json:"Message"`
	Protocol     string    `db:"protocol" json:"Protocol"`
	UrgencyLevel int       `db:"urgency_level" json:"UrgencyLevel"`
	PostedBy     int64     `db:"posted_by" json:"PostedBy"`
	PostedByRole string    `db:"posted_by_role" json:"PostedByRole"`
	SentTime     Timestamp `db:"sent_time" json:"SentTime"`
	CreatedAt    time.Time `db:"created_at" json:"CreatedAt"`
}

// AlertRecipient links an alert to one recipient and carries that
// recipient's acknowledgment state, independent of other recipients.
type AlertRecipient struct {
	AlertID        int64      `db:"alert_id" json:"AlertID"`
	RecipientType  string     `db:"recipient_type" json:"RecipientType"`
	RecipientID    int64      `db:"recipient_id" json:"RecipientID"`
	AcknowledgedAt *time.Time `db:"acknowledged_at" json:"AcknowledgedAt,omitempty"`
}

// Message is a non-urgent notification with an optional title.
type Message struct {
	ID           int64     `db:"id" json:"MessageID"`
	Title        *string   `db:"title" json:"MessageTitle,omitempty"`
	Body         string    `db:"body" json:"Message"`
	PostedBy     int64     `db:"posted_by" json:"PostedBy"`
	PostedByRole string    `db:"posted_by_role" json:"PostedByRole"`
	SentTime     Timestamp `db:"sent_time" json:"SentTime"`
	CreatedAt    time.Time `db:"created_at" json:"CreatedAt"`
}

// MessageRecipient links a message to one recipient with per-recipient
// read state.
type MessageRecipient struct {
	MessageID     int64      `db:"message_id" json:"MessageID"`
	RecipientType string     `db:"recipient_type" json:"RecipientType"`
	RecipientID   int64      `db:"recipient_id" json:"RecipientID"`
	ReadAt        *time.Time `db:"read_at" json:"ReadAt,omitempty"`
}

// RecipientRef addresses one recipient in a multi-recipient create request.
type RecipientRef struct {
	Type string `json:"Type"`
	ID   int64  `json:"ID"`
}

// CreateAlertInput is the alert creation request body.
type CreateAlertInput struct {
	Message       string         `json:"Message"`
	SentTime      Timestamp      `json:"SentTime"`
	PostedBy      int64          `json:"PostedBy"`
	PostedByRole  string         `json:"PostedByRole"`
	UrgencyLevel  int            `json:"UrgencyLevel"`
	Protocol      string         `json:"Protocol"`
	RecipientType string         `json:"RecipientType"`
	RecipientID   int64          `json:"RecipientID"`
	Recipients    []RecipientRef `json:"Recipients"`
}

// CreateMessageInput is the message creation request body.
type CreateMessageInput struct {
	MessageTitle  string         `json:"MessageTitle"`
	Message       string         `json:"Message"`
	PostedBy      int64          `json:"PostedBy"`
	PostedByRole  string         `json:"PostedByRole"`
	SentTime      Timestamp      `json:"SentTime"`
	RecipientType string         `json:"RecipientType"`
	RecipientID   int64          `json:"RecipientID"`
	Recipients    []RecipientRef `json:"Recipients"`
}

// AckInput identifies the recipient acknowledging an alert or marking a
// message read.
type AckInput struct {
	UserType string `json:"user_type"`
	UserID   int64  `json:"user_id"`
}
