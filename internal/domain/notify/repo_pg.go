package notify

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalflow/vitalflow/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Alert Repository ===========

type alertRepoPG struct{ pool *pgxpool.Pool }

func NewAlertRepoPG(pool *pgxpool.Pool) AlertRepository {
	return &alertRepoPG{pool: pool}
}

func (r *alertRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const alertCols = `id, body, protocol, urgency_level, posted_by, posted_by_role, sent_time, created_at`

func (r *alertRepoPG) scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	err := row.Scan(&a.ID, &a.Message, &a.Protocol, &a.UrgencyLevel,
		&a.PostedBy, &a.PostedByRole, &a.SentTime, &a.CreatedAt)
	return &a, err
}

func (r *alertRepoPG) Create(ctx context.Context, a *Alert) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO alert (body, protocol, urgency_level, posted_by, posted_by_role, sent_time)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		a.Message, a.Protocol, a.UrgencyLevel, a.PostedBy, a.PostedByRole, a.SentTime,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *alertRepoPG) GetByID(ctx context.Context, id int64) (*Alert, error) {
	return r.scanAlert(r.conn(ctx).QueryRow(ctx, `SELECT `+alertCols+` FROM alert WHERE id = $1`, id))
}

func (r *alertRepoPG) ListByRecipient(ctx context.Context, recipientType string, recipientID int64, limit, offset int) ([]*Alert, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM alert a
		JOIN alert_recipient ar ON ar.alert_id = a.id
		WHERE ar.recipient_type = $1 AND ar.recipient_id = $2`,
		recipientType, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.body, a.protocol, a.urgency_level, a.posted_by, a.posted_by_role, a.sent_time, a.created_at
		FROM alert a
		JOIN alert_recipient ar ON ar.alert_id = a.id
		WHERE ar.recipient_type = $1 AND ar.recipient_id = $2
		ORDER BY a.sent_time DESC LIMIT $3 OFFSET $4`,
		recipientType, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Alert
	for rows.Next() {
		a, err := r.scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *alertRepoPG) AddRecipient(ctx context.Context, rec *AlertRecipient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO alert_recipient (alert_id, recipient_type, recipient_id)
		VALUES ($1,$2,$3)
		ON CONFLICT (alert_id, recipient_type, recipient_id) DO NOTHING`,
		rec.AlertID, rec.RecipientType, rec.RecipientID)
	return err
}

// Acknowledge is a single atomic upsert so concurrent acknowledgments of the
// same (alert, recipient) pair cannot race into duplicate rows.
func (r *alertRepoPG) Acknowledge(ctx context.Context, alertID int64, recipientType string, recipientID int64, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO alert_recipient (alert_id, recipient_type, recipient_id, acknowledged_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (alert_id, recipient_type, recipient_id)
		DO UPDATE SET acknowledged_at = EXCLUDED.acknowledged_at`,
		alertID, recipientType, recipientID, at)
	return err
}

func (r *alertRepoPG) CountUnacknowledged(ctx context.Context, recipientType string, recipientID int64) (int64, error) {
	var count int64
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM alert_recipient
		WHERE recipient_type = $1 AND recipient_id = $2 AND acknowledged_at IS NULL`,
		recipientType, recipientID).Scan(&count)
	return count, err
}

// =========== Message Repository ===========

type messageRepoPG struct{ pool *pgxpool.Pool }

func NewMessageRepoPG(pool *pgxpool.Pool) MessageRepository {
	return &messageRepoPG{pool: pool}
}

func (r *messageRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const messageCols = `id, title, body, posted_by, posted_by_role, sent_time, created_at`

func (r *messageRepoPG) scanMessage(row pgx.Row) (*Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.Title, &m.Body, &m.PostedBy, &m.PostedByRole, &m.SentTime, &m.CreatedAt)
	return &m, err
}

func (r *messageRepoPG) Create(ctx context.Context, m *Message) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO message (title, body, posted_by, posted_by_role, sent_time)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		m.Title, m.Body, m.PostedBy, m.PostedByRole, m.SentTime,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *messageRepoPG) GetByID(ctx context.Context, id int64) (*Message, error) {
	return r.scanMessage(r.conn(ctx).QueryRow(ctx, `SELECT `+messageCols+` FROM message WHERE id = $1`, id))
}

func (r *messageRepoPG) ListByRecipient(ctx context.Context, recipientType string, recipientID int64, limit, offset int) ([]*Message, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM message m
		JOIN message_recipient mr ON mr.message_id = m.id
		WHERE mr.recipient_type = $1 AND mr.recipient_id = $2`,
		recipientType, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT m.id, m.title, m.body, m.posted_by, m.posted_by_role, m.sent_time, m.created_at
		FROM message m
		JOIN message_recipient mr ON mr.message_id = m.id
		WHERE mr.recipient_type = $1 AND mr.recipient_id = $2
		ORDER BY m.sent_time DESC LIMIT $3 OFFSET $4`,
		recipientType, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Message
	for rows.Next() {
		m, err := r.scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

func (r *messageRepoPG) AddRecipient(ctx context.Context, rec *MessageRecipient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO message_recipient (message_id, recipient_type, recipient_id)
		VALUES ($1,$2,$3)
		ON CONFLICT (message_id, recipient_type, recipient_id) DO NOTHING`,
		rec.MessageID, rec.RecipientType, rec.RecipientID)
	return err
}

func (r *messageRepoPG) MarkRead(ctx context.Context, messageID int64, recipientType string, recipientID int64, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO message_recipient (message_id, recipient_type, recipient_id, read_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (message_id, recipient_type, recipient_id)
		DO UPDATE SET read_at = EXCLUDED.read_at`,
		messageID, recipientType, recipientID, at)
	return err
}

func (r *messageRepoPG) CountUnread(ctx context.Context, recipientType string, recipientID int64) (int64, error) {
	var count int64
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM message_recipient
		WHERE recipient_type = $1 AND recipient_id = $2 AND read_at IS NULL`,
		recipientType, recipientID).Scan(&count)
	return count, err
}

// Delete removes the message row; recipient links cascade.
func (r *messageRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM message WHERE id = $1`, id)
	return err
}
