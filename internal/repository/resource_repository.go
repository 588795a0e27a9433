package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/agrigo/equipment-rental/internal/model"
)

type ResourceRepo struct{ DB *sql.DB }

func NewResourceRepo(db *sql.DB) *ResourceRepo { return &ResourceRepo{DB: db} }

const resourceColumns = "id, owner_id, name, type, description, price_per_day, capacity, " +
    "location, latitude, longitude, image_url, status, verified_by, created_at"

// Create inserts a resource. Status always starts at pending no
// matter what the caller supplied; verification is a separate admin
// transition.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
    res.Status = model.ResourcePending
    res.VerifiedBy = nil
    res.CreatedAt = time.Now().UTC()
    out, err := r.DB.ExecContext(ctx,
        `INSERT INTO resources
            (owner_id, name, type, description, price_per_day, capacity,
             location, latitude, longitude, image_url, status, created_at)
         VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
        res.OwnerID, res.Name, res.Type, nullableStr(res.Description), res.PricePerDay,
        nullableStr(res.Capacity), res.Location, nullableFloat(res.Latitude),
        nullableFloat(res.Longitude), nullableStr(res.ImageURL), res.Status, res.CreatedAt)
    if err != nil {
        return err
    }
    id, err := out.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    return nil
}

// GetByID fetches a resource by primary key.
func (r *ResourceRepo) GetByID(ctx context.Context, id uint64) (model.Resource, error) {
    row := r.DB.QueryRowContext(ctx,
        "SELECT "+resourceColumns+" FROM resources WHERE id=? LIMIT 1", id)
    res, err := scanResource(row)
    if err == sql.ErrNoRows {
        return res, ErrNotFound
    }
    return res, err
}

// ResourceFilter narrows a resource listing. Zero values disable a
// filter; filters combine with AND.
type ResourceFilter struct {
    Status  string
    Type    string
    OwnerID *uint64
    Search  string // substring over name OR location
    Limit   int
    Offset  int
}

// List returns resources matching the filter, newest first.
func (r *ResourceRepo) List(ctx context.Context, f ResourceFilter) ([]model.Resource, error) {
    where := []string{}
    args := []any{}
    if f.Status != "" {
        where = append(where, "status = ?")
        args = append(args, f.Status)
    }
    if f.OwnerID != nil {
        where = append(where, "owner_id = ?")
        args = append(args, *f.OwnerID)
    }
    if f.Type != "" {
        where = append(where, "type = ?")
        args = append(args, f.Type)
    }
    if f.Search != "" {
        where = append(where, "(name LIKE ? OR location LIKE ?)")
        pat := "%" + f.Search + "%"
        args = append(args, pat, pat)
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    args = append(args, f.Limit, f.Offset)
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+resourceColumns+" FROM resources WHERE "+cond+
            " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
        args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Resource, 0, f.Limit)
    for rows.Next() {
        res, err := scanResource(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// Update applies the validated column set in a single statement.
// Values of nil clear the column. Zero affected rows is not an error:
// MySQL reports 0 when the new values equal the old ones.
func (r *ResourceRepo) Update(ctx context.Context, id uint64, fields map[string]any) error {
    set, args := buildSet(fields)
    args = append(args, id)
    _, err := r.DB.ExecContext(ctx,
        "UPDATE resources SET "+set+" WHERE id = ?", args...)
    return err
}

// Delete removes a resource. A missing row returns ErrNotFound.
func (r *ResourceRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM resources WHERE id = ?", id)
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

// scanner abstracts sql.Row and sql.Rows for shared scan code.
type scanner interface{ Scan(dest ...any) error }

func scanResource(s scanner) (model.Resource, error) {
    var res model.Resource
    var desc, capacity, imageURL sql.NullString
    var lat, lon sql.NullFloat64
    var verifiedBy sql.NullInt64
    err := s.Scan(&res.ID, &res.OwnerID, &res.Name, &res.Type, &desc, &res.PricePerDay,
        &capacity, &res.Location, &lat, &lon, &imageURL, &res.Status, &verifiedBy, &res.CreatedAt)
    if err != nil {
        return res, err
    }
    if desc.Valid {
        res.Description = &desc.String
    }
    if capacity.Valid {
        res.Capacity = &capacity.String
    }
    if imageURL.Valid {
        res.ImageURL = &imageURL.String
    }
    if lat.Valid {
        res.Latitude = &lat.Float64
    }
    if lon.Valid {
        res.Longitude = &lon.Float64
    }
    if verifiedBy.Valid {
        v := uint64(verifiedBy.Int64)
        res.VerifiedBy = &v
    }
    return res, nil
}

// buildSet renders "col1 = ?, col2 = ?" and the matching args from a
// validated column map. Keys come from the validation layer only.
func buildSet(fields map[string]any) (string, []any) {
    set := make([]string, 0, len(fields))
    args := make([]any, 0, len(fields)+1)
    for col, v := range fields {
        set = append(set, col+" = ?")
        args = append(args, v)
    }
    return strings.Join(set, ", "), args
}

// nullableFloat converts an optional float to a driver value.
func nullableFloat(f *float64) any {
    if f == nil {
        return nil
    }
    return *f
}
