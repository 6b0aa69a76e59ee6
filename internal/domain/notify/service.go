package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalflow/vitalflow/internal/platform/cache"
	"github.com/vitalflow/vitalflow/internal/platform/db"
	"github.com/vitalflow/vitalflow/internal/platform/ws"
)

// Recipient type enums are closed per family, matching the join tables:
// alerts go to staff, messages additionally reach patients. Proxies read
// their linked patient's messages, so "proxy" is not a recipient type.
var alertRecipientTypes = map[string]bool{
	"doctor": true, "nurse": true,
}

var messageRecipientTypes = map[string]bool{
	"doctor": true, "nurse": true, "patient": true,
}

// txRunner runs fn atomically; everything fn writes commits or rolls back
// as one unit. The default wraps db.WithTx.
type txRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	alerts   AlertRepository
	messages MessageRepository
	runTx    txRunner
	events   ws.EventPublisher
	counts   cache.CountStore
}

// NewService wires the notification subsystem. events and counts are
// optional; a nil pool runs fan-out without an enclosing transaction.
func NewService(pool *pgxpool.Pool, alerts AlertRepository, messages MessageRepository, events ws.EventPublisher, counts cache.CountStore) *Service {
	s := &Service{alerts: alerts, messages: messages, events: events, counts: counts}
	if pool != nil {
		s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		}
	} else {
		s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return s
}

// recipientsOf collapses the single-pair baseline contract and the optional
// Recipients array into one normalized list, rejecting types outside the
// family's enum.
func recipientsOf(single RecipientRef, extra []RecipientRef, valid map[string]bool) ([]RecipientRef, error) {
	var out []RecipientRef
	if single.Type != "" || single.ID != 0 {
		out = append(out, single)
	}
	out = append(out, extra...)
	seen := make(map[RecipientRef]bool, len(out))
	normalized := out[:0]
	for _, r := range out {
		r.Type = strings.ToLower(r.Type)
		if !valid[r.Type] {
			return nil, invalid("RecipientType", "must be one of the supported recipient types")
		}
		if r.ID <= 0 {
			return nil, invalid("RecipientID", "must be a positive integer")
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		normalized = append(normalized, r)
	}
	return normalized, nil
}

func (s *Service) publish(ctx context.Context, eventType, resource, topic string, id int64, payload interface{}) {
	if s.events == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		data = nil
	}
	_ = s.events.Publish(ctx, ws.Event{
		Type:       eventType,
		Topic:      topic,
		Resource:   resource,
		ResourceID: id,
		Timestamp:  time.Now().UTC(),
		Data:       data,
	})
}

func (s *Service) invalidateCount(ctx context.Context, family, recipientType string, recipientID int64) {
	if s.counts == nil {
		return
	}
	_ = s.counts.Invalidate(ctx, family, recipientType, recipientID)
}

// -- Alerts --

func (s *Service) CreateAlert(ctx context.Context, in *CreateAlertInput) (*Alert, error) {
	if in.Message == "" {
		return nil, required("Message")
	}
	if in.SentTime.IsZero() {
		return nil, required("SentTime")
	}
	if in.PostedBy <= 0 {
		return nil, required("PostedBy")
	}
	if in.PostedByRole == "" {
		return nil, required("PostedByRole")
	}
	if in.UrgencyLevel < 1 || in.UrgencyLevel > 5 {
		return nil, invalid("UrgencyLevel", "must be between 1 and 5")
	}
	if in.Protocol == "" {
		return nil, required("Protocol")
	}
	recipients, err := recipientsOf(
		RecipientRef{Type: in.RecipientType, ID: in.RecipientID},
		in.Recipients, alertRecipientTypes)
	if err != nil {
		return nil, err
	}

	alert := &Alert{
		Message:      in.Message,
		Protocol:     in.Protocol,
		UrgencyLevel: in.UrgencyLevel,
		PostedBy:     in.PostedBy,
		PostedByRole: in.PostedByRole,
		SentTime:     in.SentTime,
	}
	// Creation and fan-out commit together; a failed link insert rolls the
	// alert back too.
	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.alerts.Create(ctx, alert); err != nil {
			return err
		}
		for _, r := range recipients {
			rec := &AlertRecipient{AlertID: alert.ID, RecipientType: r.Type, RecipientID: r.ID}
			if err := s.alerts.AddRecipient(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, r := range recipients {
		s.publish(ctx, "alert.created", "alert", ws.AlertTopic(r.Type, r.ID), alert.ID, alert)
		s.invalidateCount(ctx, "alert", r.Type, r.ID)
	}
	return alert, nil
}

func (s *Service) GetAlert(ctx context.Context, id int64) (*Alert, error) {
	return s.alerts.GetByID(ctx, id)
}

func (s *Service) ListAlerts(ctx context.Context, userType string, userID int64, limit, offset int) ([]*Alert, int, error) {
	userType = strings.ToLower(userType)
	if !alertRecipientTypes[userType] {
		return nil, 0, invalid("user_type", "must be doctor or nurse")
	}
	return s.alerts.ListByRecipient(ctx, userType, userID, limit, offset)
}

// AcknowledgeAlert records that the recipient has seen the alert. Repeating
// the call refreshes the timestamp rather than failing.
func (s *Service) AcknowledgeAlert(ctx context.Context, alertID int64, in *AckInput) error {
	userType := strings.ToLower(in.UserType)
	if !alertRecipientTypes[userType] {
		return invalid("user_type", "must be doctor or nurse")
	}
	if in.UserID <= 0 {
		return required("user_id")
	}
	if _, err := s.alerts.GetByID(ctx, alertID); err != nil {
		return err
	}
	if err := s.alerts.Acknowledge(ctx, alertID, userType, in.UserID, time.Now().UTC()); err != nil {
		return err
	}
	s.publish(ctx, "alert.acknowledged", "alert", ws.AlertTopic(userType, in.UserID), alertID, nil)
	s.invalidateCount(ctx, "alert", userType, in.UserID)
	return nil
}

// UnacknowledgedAlertCount serves the dashboards' badge counters,
// cache-aside via the count store when one is configured.
func (s *Service) UnacknowledgedAlertCount(ctx context.Context, userType string, userID int64) (int64, error) {
	userType = strings.ToLower(userType)
	if !alertRecipientTypes[userType] {
		return 0, invalid("user_type", "must be doctor or nurse")
	}
	if s.counts != nil {
		if count, ok, err := s.counts.Get(ctx, "alert", userType, userID); err == nil && ok {
			return count, nil
		}
	}
	count, err := s.alerts.CountUnacknowledged(ctx, userType, userID)
	if err != nil {
		return 0, err
	}
	if s.counts != nil {
		_ = s.counts.Set(ctx, "alert", userType, userID, count)
	}
	return count, nil
}

// -- Messages --

func (s *Service) CreateMessage(ctx context.Context, in *CreateMessageInput) (*Message, error) {
	if in.Message == "" {
		return nil, required("Message")
	}
	if in.PostedBy <= 0 {
		return nil, required("PostedBy")
	}
	if in.PostedByRole == "" {
		return nil, required("PostedByRole")
	}
	recipients, err := recipientsOf(
		RecipientRef{Type: in.RecipientType, ID: in.RecipientID},
		in.Recipients, messageRecipientTypes)
	if err != nil {
		return nil, err
	}

	sentTime := in.SentTime
	if sentTime.IsZero() {
		sentTime = Timestamp{Time: time.Now().UTC()}
	}
	msg := &Message{
		Body:         in.Message,
		PostedBy:     in.PostedBy,
		PostedByRole: in.PostedByRole,
		SentTime:     sentTime,
	}
	if in.MessageTitle != "" {
		msg.Title = &in.MessageTitle
	}
	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.messages.Create(ctx, msg); err != nil {
			return err
		}
		for _, r := range recipients {
			rec := &MessageRecipient{MessageID: msg.ID, RecipientType: r.Type, RecipientID: r.ID}
			if err := s.messages.AddRecipient(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, r := range recipients {
		s.publish(ctx, "message.created", "message", ws.MessageTopic(r.Type, r.ID), msg.ID, msg)
		s.invalidateCount(ctx, "message", r.Type, r.ID)
	}
	return msg, nil
}

func (s *Service) GetMessage(ctx context.Context, id int64) (*Message, error) {
	return s.messages.GetByID(ctx, id)
}

func (s *Service) ListMessages(ctx context.Context, userType string, userID int64, limit, offset int) ([]*Message, int, error) {
	userType = strings.ToLower(userType)
	if !messageRecipientTypes[userType] {
		return nil, 0, invalid("user_type", "must be doctor, nurse or patient")
	}
	return s.messages.ListByRecipient(ctx, userType, userID, limit, offset)
}

// MarkMessageRead mirrors alert acknowledgment: a non-destructive,
// idempotent upsert of the read timestamp.
func (s *Service) MarkMessageRead(ctx context.Context, messageID int64, in *AckInput) error {
	userType := strings.ToLower(in.UserType)
	if !messageRecipientTypes[userType] {
		return invalid("user_type", "must be doctor, nurse or patient")
	}
	if in.UserID <= 0 {
		return required("user_id")
	}
	if _, err := s.messages.GetByID(ctx, messageID); err != nil {
		return err
	}
	if err := s.messages.MarkRead(ctx, messageID, userType, in.UserID, time.Now().UTC()); err != nil {
		return err
	}
	s.publish(ctx, "message.read", "message", ws.MessageTopic(userType, in.UserID), messageID, nil)
	s.invalidateCount(ctx, "message", userType, in.UserID)
	return nil
}

// PurgeMessage is the explicit destructive path; reading a message never
// deletes it.
func (s *Service) PurgeMessage(ctx context.Context, id int64) error {
	if _, err := s.messages.GetByID(ctx, id); err != nil {
		return err
	}
	return s.messages.Delete(ctx, id)
}

func (s *Service) UnreadMessageCount(ctx context.Context, userType string, userID int64) (int64, error) {
	userType = strings.ToLower(userType)
	if !messageRecipientTypes[userType] {
		return 0, invalid("user_type", "must be doctor, nurse or patient")
	}
	if s.counts != nil {
		if count, ok, err := s.counts.Get(ctx, "message", userType, userID); err == nil && ok {
			return count, nil
		}
	}
	count, err := s.messages.CountUnread(ctx, userType, userID)
	if err != nil {
		return 0, err
	}
	if s.counts != nil {
		_ = s.counts.Set(ctx, "message", userType, userID, count)
	}
	return count, nil
}
