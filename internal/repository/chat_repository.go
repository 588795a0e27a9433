package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/agrigo/equipment-rental/internal/model"
)

type ChatRepo struct{ DB *sql.DB }

func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{DB: db} }

// Create appends a message to a booking's log. Messages are immutable
// once stored; no update or delete statement exists for this table.
func (r *ChatRepo) Create(ctx context.Context, m *model.ChatMessage) error {
    m.CreatedAt = time.Now().UTC()
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO chat_messages (booking_id, sender_id, message, created_at) VALUES (?,?,?,?)",
        m.BookingID, m.SenderID, m.Message, m.CreatedAt)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}

// ListByBooking returns a booking's messages in send order. The id
// tiebreaker keeps ordering stable when timestamps collide.
func (r *ChatRepo) ListByBooking(ctx context.Context, bookingID uint64, limit, offset int) ([]model.ChatMessage, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT id, booking_id, sender_id, message, created_at
         FROM chat_messages WHERE booking_id = ?
         ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`,
        bookingID, limit, offset)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.ChatMessage, 0, limit)
    for rows.Next() {
        var m model.ChatMessage
        if err := rows.Scan(&m.ID, &m.BookingID, &m.SenderID, &m.Message, &m.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}
