package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/agrigo/equipment-rental/internal/lifecycle"
    "github.com/agrigo/equipment-rental/internal/model"
    "github.com/agrigo/equipment-rental/internal/queue"
    "github.com/agrigo/equipment-rental/internal/repository"
    "github.com/agrigo/equipment-rental/internal/validate"
)

// ResourceHandler serves equipment listings and the admin
// verification workflow. Both update entry points (path id and query
// id) share updateByID so the two historical variants stay
// behaviorally identical with one error-code vocabulary.
type ResourceHandler struct {
    Resources ResourceStore
    Users     UserStore
    Bookings  BookingStore
    Events    EventPublisher // optional; nil disables publishing
}

func NewResourceHandler(resources ResourceStore, users UserStore, bookings BookingStore, events EventPublisher) *ResourceHandler {
    if resources == nil || users == nil || bookings == nil {
        panic("nil store passed to NewResourceHandler")
    }
    return &ResourceHandler{Resources: resources, Users: users, Bookings: bookings, Events: events}
}

// Get handles GET /resources: single fetch with ?id=, filtered
// listing otherwise, newest first.
func (h *ResourceHandler) Get(c echo.Context) error {
    ctx := c.Request().Context()

    if raw := c.QueryParam("id"); raw != "" {
        id, ok := parseID(raw)
        if !ok {
            return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
        }
        res, err := h.Resources.GetByID(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return errJSON(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
            }
            return internalError(c)
        }
        return c.JSON(http.StatusOK, res)
    }

    f := repository.ResourceFilter{
        Type:   c.QueryParam("type"),
        Search: c.QueryParam("search"),
        Limit:  parseLimit(c.QueryParam("limit"), 10),
        Offset: parseOffset(c.QueryParam("offset")),
    }
    if status := c.QueryParam("status"); status != "" {
        if !model.ValidResourceStatus(status) {
            return errJSON(c, http.StatusBadRequest, "INVALID_STATUS",
                "status must be one of: pending, verified, rejected")
        }
        f.Status = status
    }
    if raw := c.QueryParam("ownerId"); raw != "" {
        ownerID, ok := parseID(raw)
        if !ok {
            return errJSON(c, http.StatusBadRequest, "INVALID_OWNER_ID", "Valid ownerId is required")
        }
        f.OwnerID = &ownerID
    }
    resources, err := h.Resources.List(ctx, f)
    if err != nil {
        return internalError(c)
    }
    return c.JSON(http.StatusOK, resources)
}

// Create handles POST /resources. The owner must exist and hold the
// owner role; status is forced to pending regardless of input.
func (h *ResourceHandler) Create(c echo.Context) error {
    body, rej := validate.ParseBody(c.Request().Body)
    if rej != nil {
        return rejectJSON(c, rej)
    }
    in, rej := validate.ResourceCreateInput(body)
    if rej != nil {
        return rejectJSON(c, rej)
    }

    ctx := c.Request().Context()
    owner, err := h.Users.GetByID(ctx, in.OwnerID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusBadRequest, "INVALID_OWNER_ID",
                "ownerId must reference an existing owner")
        }
        return internalError(c)
    }
    if owner.Role != model.RoleOwner {
        return errJSON(c, http.StatusBadRequest, "INVALID_OWNER_ID",
            "ownerId must reference an existing owner")
    }

    res := model.Resource{
        OwnerID:     in.OwnerID,
        Name:        in.Name,
        Type:        in.Type,
        Description: in.Description,
        PricePerDay: in.PricePerDay,
        Capacity:    in.Capacity,
        Location:    in.Location,
        Latitude:    in.Latitude,
        Longitude:   in.Longitude,
        ImageURL:    in.ImageURL,
    }
    if err := h.Resources.Create(ctx, &res); err != nil {
        return internalError(c)
    }
    return c.JSON(http.StatusCreated, res)
}

// UpdateByPath handles PUT /resources/:id.
func (h *ResourceHandler) UpdateByPath(c echo.Context) error {
    id, ok := parseID(c.Param("id"))
    if !ok {
        return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
    }
    return h.updateByID(c, id)
}

// UpdateByQuery handles PUT /resources?id=.
func (h *ResourceHandler) UpdateByQuery(c echo.Context) error {
    id, ok := parseID(c.QueryParam("id"))
    if !ok {
        return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
    }
    return h.updateByID(c, id)
}

// updateByID validates and applies a partial update. A verification
// decision (pending → verified/rejected) must carry the deciding
// admin in verifiedBy, which is stamped in the same write.
func (h *ResourceHandler) updateByID(c echo.Context, id uint64) error {
    body, rej := validate.ParseBody(c.Request().Body)
    if rej != nil {
        return rejectJSON(c, rej)
    }
    upd, rej := validate.ResourceUpdateInput(body)
    if rej != nil {
        return rejectJSON(c, rej)
    }

    ctx := c.Request().Context()
    existing, err := h.Resources.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
        }
        return internalError(c)
    }

    decision := upd.Status != nil && lifecycle.ResourceDecision(existing.Status, *upd.Status)
    if decision {
        // An authenticated caller must hold the admin role to decide;
        // anonymous requests rely on the verifiedBy check alone.
        if role, ok := c.Get("role").(string); ok && role != model.RoleAdmin {
            return errJSON(c, http.StatusForbidden, "FORBIDDEN",
                "Only an admin can verify or reject a resource")
        }
        if upd.VerifiedBy == nil {
            return errJSON(c, http.StatusBadRequest, "MISSING_VERIFIED_BY",
                "verifiedBy is required when verifying or rejecting a resource")
        }
        admin, err := h.Users.GetByID(ctx, *upd.VerifiedBy)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return errJSON(c, http.StatusBadRequest, "INVALID_VERIFIED_BY",
                    "verifiedBy must reference an existing admin")
            }
            return internalError(c)
        }
        if admin.Role != model.RoleAdmin {
            return errJSON(c, http.StatusBadRequest, "INVALID_VERIFIED_BY",
                "verifiedBy must reference an existing admin")
        }
    }

    if err := h.Resources.Update(ctx, id, upd.Fields); err != nil {
        return internalError(c)
    }
    updated, err := h.Resources.GetByID(ctx, id)
    if err != nil {
        return internalError(c)
    }

    if decision && h.Events != nil {
        _ = h.Events.PublishResourceVerified(ctx, queue.ResourceVerifiedEvent{
            EventID:    uuid.NewString(),
            ResourceID: updated.ID,
            OwnerID:    updated.OwnerID,
            VerifiedBy: *upd.VerifiedBy,
            Status:     updated.Status,
            DecidedAt:  time.Now().UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /resources?id=. A resource still referenced
// by pending or confirmed bookings cannot be removed.
func (h *ResourceHandler) Delete(c echo.Context) error {
    id, ok := parseID(c.QueryParam("id"))
    if !ok {
        return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
    }

    ctx := c.Request().Context()
    existing, err := h.Resources.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
        }
        return internalError(c)
    }
    active, err := h.Bookings.CountActiveByResource(ctx, id)
    if err != nil {
        return internalError(c)
    }
    if active > 0 {
        return errJSON(c, http.StatusConflict, "RESOURCE_IN_USE",
            "Resource has active bookings and cannot be deleted")
    }
    if err := h.Resources.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
        }
        return internalError(c)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message":  "Resource deleted successfully",
        "resource": existing,
    })
}
