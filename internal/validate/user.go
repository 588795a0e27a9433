package validate

import (
    "strings"

    "github.com/agrigo/equipment-rental/internal/model"
)

// UserCreate is the normalized input for registering a user.
type UserCreate struct {
    Email       string
    Name        string
    Role        string
    FirebaseUID string
    Phone       *string
}

// UserCreateInput validates a user registration body. Check order is
// fixed: email, name, role, firebaseUid presence, then the role enum.
// Uniqueness of email and firebaseUid is enforced by the store.
func UserCreateInput(b Body) (*UserCreate, *Rejection) {
    email, ok := b.requiredString("email")
    if !ok {
        return nil, reject("MISSING_EMAIL", "Email is required")
    }
    name, ok := b.requiredString("name")
    if !ok {
        return nil, reject("MISSING_NAME", "Name is required")
    }
    role, ok := b.requiredString("role")
    if !ok {
        return nil, reject("MISSING_ROLE", "Role is required")
    }
    uid, ok := b.requiredString("firebaseUid")
    if !ok {
        return nil, reject("MISSING_FIREBASE_UID", "Firebase UID is required")
    }
    if !model.ValidRole(role) {
        return nil, reject("INVALID_ROLE", "Invalid role. Must be one of: farmer, owner, admin")
    }
    phone, _ := b.optionalString("phone")
    return &UserCreate{
        Email:       strings.ToLower(email),
        Name:        name,
        Role:        role,
        FirebaseUID: uid,
        Phone:       phone,
    }, nil
}
