package model

import "time"

// Role values accepted for users.role. A user's role is fixed at
// creation; no role-change endpoint exists.
const (
    RoleFarmer = "farmer"
    RoleOwner  = "owner"
    RoleAdmin  = "admin"
)

// ValidRole reports whether s belongs to the closed role set.
func ValidRole(s string) bool {
    return s == RoleFarmer || s == RoleOwner || s == RoleAdmin
}

// User represents an application user record as stored in the
// `users` table. Identity is external: FirebaseUID ties the row to
// the identity provider. Email and FirebaseUID are each unique.
//
// Fields:
//  ID          – primary key identifier of the user.
//  Email       – unique email address, stored lower-cased.
//  Name        – display name.
//  Role        – one of farmer, owner, admin.
//  FirebaseUID – unique external identity provider UID.
//  Phone       – optional contact number (nullable).
//  CreatedAt   – timestamp of creation.
type User struct {
    ID          uint64    `json:"id"`          // users.id
    Email       string    `json:"email"`       // users.email
    Name        string    `json:"name"`        // users.name
    Role        string    `json:"role"`        // users.role
    FirebaseUID string    `json:"firebaseUid"` // users.firebase_uid
    Phone       *string   `json:"phone"`       // users.phone (nullable)
    CreatedAt   time.Time `json:"createdAt"`   // users.created_at
}
