package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/agrigo/equipment-rental/internal/model"
)

type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = "id, farmer_id, resource_id, owner_id, start_date, end_date, " +
    "total_price, status, crop_type, farm_stage, crop_weight, created_at"

// Create inserts a booking. Status always starts at pending and the
// total price is stored exactly as validated, never recomputed.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    b.Status = model.BookingPending
    b.CreatedAt = time.Now().UTC()
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO bookings
            (farmer_id, resource_id, owner_id, start_date, end_date,
             total_price, status, crop_type, farm_stage, crop_weight, created_at)
         VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
        b.FarmerID, b.ResourceID, b.OwnerID, b.StartDate, b.EndDate,
        b.TotalPrice, b.Status, nullableStr(b.CropType), nullableStr(b.FarmStage),
        nullableStr(b.CropWeight), b.CreatedAt)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// GetByID fetches a booking by primary key.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
    row := r.DB.QueryRowContext(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id)
    b, err := scanBooking(row)
    if err == sql.ErrNoRows {
        return b, ErrNotFound
    }
    return b, err
}

// BookingFilter narrows a booking listing. Nil/zero values disable a
// filter; filters combine with AND.
type BookingFilter struct {
    FarmerID   *uint64
    OwnerID    *uint64
    ResourceID *uint64
    Status     string
    Limit      int
    Offset     int
}

// List returns bookings matching the filter, ordered by id ascending.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
    where := []string{}
    args := []any{}
    if f.FarmerID != nil {
        where = append(where, "farmer_id = ?")
        args = append(args, *f.FarmerID)
    }
    if f.OwnerID != nil {
        where = append(where, "owner_id = ?")
        args = append(args, *f.OwnerID)
    }
    if f.ResourceID != nil {
        where = append(where, "resource_id = ?")
        args = append(args, *f.ResourceID)
    }
    if f.Status != "" {
        where = append(where, "status = ?")
        args = append(args, f.Status)
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    args = append(args, f.Limit, f.Offset)
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE "+cond+" ORDER BY id ASC LIMIT ? OFFSET ?",
        args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Booking, 0, f.Limit)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// Update applies the validated column set unconditionally. Used for
// field edits that do not change status.
func (r *BookingRepo) Update(ctx context.Context, id uint64, fields map[string]any) error {
    set, args := buildSet(fields)
    args = append(args, id)
    _, err := r.DB.ExecContext(ctx,
        "UPDATE bookings SET "+set+" WHERE id = ?", args...)
    return err
}

// UpdateFromStatus applies the validated column set only while the
// stored status still equals expected. Zero affected rows means a
// concurrent transition won the race; the caller gets ErrConflict
// instead of a silent last-write-wins overwrite.
func (r *BookingRepo) UpdateFromStatus(ctx context.Context, id uint64, expected string, fields map[string]any) error {
    set, args := buildSet(fields)
    args = append(args, id, expected)
    res, err := r.DB.ExecContext(ctx,
        "UPDATE bookings SET "+set+" WHERE id = ? AND status = ?", args...)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrConflict
    }
    return nil
}

// CountActiveByResource counts pending or confirmed bookings holding
// a resource. Used to block deleting a resource that is still in use.
func (r *BookingRepo) CountActiveByResource(ctx context.Context, resourceID uint64) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM bookings WHERE resource_id = ? AND status IN (?,?)",
        resourceID, model.BookingPending, model.BookingConfirmed).Scan(&n)
    return n, err
}

// Delete removes a booking. A missing row returns ErrNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

func scanBooking(s scanner) (model.Booking, error) {
    var b model.Booking
    var cropType, farmStage, cropWeight sql.NullString
    err := s.Scan(&b.ID, &b.FarmerID, &b.ResourceID, &b.OwnerID, &b.StartDate, &b.EndDate,
        &b.TotalPrice, &b.Status, &cropType, &farmStage, &cropWeight, &b.CreatedAt)
    if err != nil {
        return b, err
    }
    if cropType.Valid {
        b.CropType = &cropType.String
    }
    if farmStage.Valid {
        b.FarmStage = &farmStage.String
    }
    if cropWeight.Valid {
        b.CropWeight = &cropWeight.String
    }
    return b, nil
}
