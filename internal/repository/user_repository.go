package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/agrigo/equipment-rental/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, name, role, firebase_uid, phone, created_at"

// Create inserts a user and fills in its ID and creation time. The
// email must already be lower-cased by validation. A unique-key
// violation surfaces as ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
    u.CreatedAt = time.Now().UTC()
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, name, role, firebase_uid, phone, created_at) VALUES (?,?,?,?,?,?)",
        u.Email, u.Name, u.Role, u.FirebaseUID, nullableStr(u.Phone), u.CreatedAt)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrDuplicate
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    u.ID = uint64(id)
    return nil
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return r.scanOne(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.scanOne(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByFirebaseUID fetches a user by its external identity UID. This
// is the indexed lookup replacing the legacy list-and-filter scan.
func (r *UserRepo) GetByFirebaseUID(ctx context.Context, uid string) (model.User, error) {
    return r.scanOne(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE firebase_uid=? LIMIT 1", uid))
}

// UserFilter narrows a user listing. Zero values disable a filter.
type UserFilter struct {
    Role   string
    Search string // substring over name OR email
    Limit  int
    Offset int
}

// List returns users matching the filter, ordered by id ascending.
func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]model.User, error) {
    where := []string{}
    args := []any{}
    if f.Role != "" {
        where = append(where, "role = ?")
        args = append(args, f.Role)
    }
    if f.Search != "" {
        where = append(where, "(name LIKE ? OR email LIKE ?)")
        pat := "%" + f.Search + "%"
        args = append(args, pat, pat)
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    args = append(args, f.Limit, f.Offset)
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE "+cond+" ORDER BY id ASC LIMIT ? OFFSET ?",
        args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.User, 0, f.Limit)
    for rows.Next() {
        u, err := scanUser(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, u)
    }
    return out, rows.Err()
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
    var u model.User
    var phone sql.NullString
    err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.FirebaseUID, &phone, &u.CreatedAt)
    if err == sql.ErrNoRows {
        return u, ErrNotFound
    }
    if err != nil {
        return u, err
    }
    if phone.Valid {
        u.Phone = &phone.String
    }
    return u, nil
}

func scanUser(rows *sql.Rows) (model.User, error) {
    var u model.User
    var phone sql.NullString
    if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.FirebaseUID, &phone, &u.CreatedAt); err != nil {
        return u, err
    }
    if phone.Valid {
        u.Phone = &phone.String
    }
    return u, nil
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry).
func isDuplicateKey(err error) bool {
    return err != nil && strings.Contains(err.Error(), "1062")
}

// nullableStr converts an optional string to a driver value.
func nullableStr(s *string) any {
    if s == nil {
        return nil
    }
    return *s
}
