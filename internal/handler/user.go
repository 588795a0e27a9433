package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/agrigo/equipment-rental/internal/model"
    "github.com/agrigo/equipment-rental/internal/repository"
    "github.com/agrigo/equipment-rental/internal/validate"
)

// UserHandler serves user registration and lookup.
type UserHandler struct {
    Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
    if users == nil {
        panic("nil store passed to NewUserHandler")
    }
    return &UserHandler{Users: users}
}

// Get handles GET /users. With ?id= it fetches a single user; with
// ?firebaseUid= it resolves the external identity directly (an
// indexed lookup, not a scan); otherwise it lists with role/search
// filters and pagination.
func (h *UserHandler) Get(c echo.Context) error {
    ctx := c.Request().Context()

    if raw := c.QueryParam("id"); raw != "" {
        id, ok := parseID(raw)
        if !ok {
            return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
        }
        u, err := h.Users.GetByID(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return errJSON(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
            }
            return internalError(c)
        }
        return c.JSON(http.StatusOK, u)
    }

    if uid := c.QueryParam("firebaseUid"); uid != "" {
        u, err := h.Users.GetByFirebaseUID(ctx, uid)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return errJSON(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
            }
            return internalError(c)
        }
        return c.JSON(http.StatusOK, u)
    }

    f := repository.UserFilter{
        Search: c.QueryParam("search"),
        Limit:  parseLimit(c.QueryParam("limit"), 10),
        Offset: parseOffset(c.QueryParam("offset")),
    }
    if role := c.QueryParam("role"); role != "" {
        if !model.ValidRole(role) {
            return errJSON(c, http.StatusBadRequest, "INVALID_ROLE",
                "Invalid role. Must be one of: farmer, owner, admin")
        }
        f.Role = role
    }
    users, err := h.Users.List(ctx, f)
    if err != nil {
        return internalError(c)
    }
    return c.JSON(http.StatusOK, users)
}

// Create handles POST /users. Email and firebase UID are each
// globally unique; the pre-checks keep the duplicate codes distinct
// and the store's unique constraints back them up against races.
func (h *UserHandler) Create(c echo.Context) error {
    body, rej := validate.ParseBody(c.Request().Body)
    if rej != nil {
        return rejectJSON(c, rej)
    }
    in, rej := validate.UserCreateInput(body)
    if rej != nil {
        return rejectJSON(c, rej)
    }

    ctx := c.Request().Context()
    if _, err := h.Users.GetByEmail(ctx, in.Email); err == nil {
        return errJSON(c, http.StatusBadRequest, "DUPLICATE_EMAIL", "Email already exists")
    } else if !errors.Is(err, repository.ErrNotFound) {
        return internalError(c)
    }
    if _, err := h.Users.GetByFirebaseUID(ctx, in.FirebaseUID); err == nil {
        return errJSON(c, http.StatusBadRequest, "DUPLICATE_FIREBASE_UID", "Firebase UID already exists")
    } else if !errors.Is(err, repository.ErrNotFound) {
        return internalError(c)
    }

    u := model.User{
        Email:       in.Email,
        Name:        in.Name,
        Role:        in.Role,
        FirebaseUID: in.FirebaseUID,
        Phone:       in.Phone,
    }
    if err := h.Users.Create(ctx, &u); err != nil {
        if errors.Is(err, repository.ErrDuplicate) {
            // Lost a race with a concurrent registration; attribute
            // the duplicate to whichever key now exists.
            if _, lookupErr := h.Users.GetByEmail(ctx, in.Email); lookupErr == nil {
                return errJSON(c, http.StatusBadRequest, "DUPLICATE_EMAIL", "Email already exists")
            }
            return errJSON(c, http.StatusBadRequest, "DUPLICATE_FIREBASE_UID", "Firebase UID already exists")
        }
        return internalError(c)
    }
    return c.JSON(http.StatusCreated, u)
}
