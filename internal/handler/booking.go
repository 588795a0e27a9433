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

// BookingHandler serves rental requests and the booking status
// workflow. Status changes go through the lifecycle engine and a
// conditional write, so a terminal booking can never silently move
// and a concurrent transition surfaces as a conflict.
type BookingHandler struct {
    Bookings  BookingStore
    Resources ResourceStore
    Events    EventPublisher // optional; nil disables publishing
}

func NewBookingHandler(bookings BookingStore, resources ResourceStore, events EventPublisher) *BookingHandler {
    if bookings == nil || resources == nil {
        panic("nil store passed to NewBookingHandler")
    }
    return &BookingHandler{Bookings: bookings, Resources: resources, Events: events}
}

// Get handles GET /bookings: single fetch with ?id=, filtered listing
// otherwise.
func (h *BookingHandler) Get(c echo.Context) error {
    ctx := c.Request().Context()

    if raw := c.QueryParam("id"); raw != "" {
        id, ok := parseID(raw)
        if !ok {
            return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
        }
        b, err := h.Bookings.GetByID(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return errJSON(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
            }
            return internalError(c)
        }
        return c.JSON(http.StatusOK, b)
    }

    f := repository.BookingFilter{
        Limit:  parseLimit(c.QueryParam("limit"), 10),
        Offset: parseOffset(c.QueryParam("offset")),
    }
    for _, p := range []struct {
        name string
        code string
        dst  **uint64
    }{
        {"farmerId", "INVALID_FARMER_ID", &f.FarmerID},
        {"ownerId", "INVALID_OWNER_ID", &f.OwnerID},
        {"resourceId", "INVALID_RESOURCE_ID", &f.ResourceID},
    } {
        raw := c.QueryParam(p.name)
        if raw == "" {
            continue
        }
        id, ok := parseID(raw)
        if !ok {
            return errJSON(c, http.StatusBadRequest, p.code, "Valid "+p.name+" is required")
        }
        *p.dst = &id
    }
    if status := c.QueryParam("status"); status != "" {
        if !model.ValidBookingStatus(status) {
            return errJSON(c, http.StatusBadRequest, "INVALID_STATUS",
                "Invalid status. Must be one of: pending, confirmed, completed, cancelled")
        }
        f.Status = status
    }
    bookings, err := h.Bookings.List(ctx, f)
    if err != nil {
        return internalError(c)
    }
    return c.JSON(http.StatusOK, bookings)
}

// Create handles POST /bookings. The resource must exist and be
// verified; totalPrice is stored verbatim and status starts at
// pending.
func (h *BookingHandler) Create(c echo.Context) error {
    body, rej := validate.ParseBody(c.Request().Body)
    if rej != nil {
        return rejectJSON(c, rej)
    }
    in, rej := validate.BookingCreateInput(body)
    if rej != nil {
        return rejectJSON(c, rej)
    }

    ctx := c.Request().Context()
    res, err := h.Resources.GetByID(ctx, in.ResourceID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
        }
        return internalError(c)
    }
    if res.Status != model.ResourceVerified {
        return errJSON(c, http.StatusConflict, "RESOURCE_NOT_VERIFIED",
            "Resource must be verified before it can be booked")
    }

    b := model.Booking{
        FarmerID:   in.FarmerID,
        ResourceID: in.ResourceID,
        OwnerID:    in.OwnerID,
        StartDate:  in.StartDate,
        EndDate:    in.EndDate,
        TotalPrice: in.TotalPrice,
        CropType:   in.CropType,
        FarmStage:  in.FarmStage,
        CropWeight: in.CropWeight,
    }
    if err := h.Bookings.Create(ctx, &b); err != nil {
        return internalError(c)
    }
    return c.JSON(http.StatusCreated, b)
}

// UpdateByPath handles PUT /bookings/:id.
func (h *BookingHandler) UpdateByPath(c echo.Context) error {
    id, ok := parseID(c.Param("id"))
    if !ok {
        return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
    }
    return h.updateByID(c, id)
}

// UpdateByQuery handles PUT /bookings?id=.
func (h *BookingHandler) UpdateByQuery(c echo.Context) error {
    id, ok := parseID(c.QueryParam("id"))
    if !ok {
        return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
    }
    return h.updateByID(c, id)
}

// updateByID validates and applies a partial update. When the status
// changes, the write is conditional on the status the transition was
// judged against.
func (h *BookingHandler) updateByID(c echo.Context, id uint64) error {
    body, rej := validate.ParseBody(c.Request().Body)
    if rej != nil {
        return rejectJSON(c, rej)
    }
    upd, rej := validate.BookingUpdateInput(body)
    if rej != nil {
        return rejectJSON(c, rej)
    }

    ctx := c.Request().Context()
    existing, err := h.Bookings.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
        }
        return internalError(c)
    }

    // A lone date in the body is checked against the stored
    // counterpart so an update cannot invert the range.
    newStart, hasStart := upd.Fields["start_date"].(string)
    newEnd, hasEnd := upd.Fields["end_date"].(string)
    if hasStart != hasEnd {
        if !hasStart {
            newStart = existing.StartDate
        }
        if !hasEnd {
            newEnd = existing.EndDate
        }
        if validate.DateBefore(newEnd, newStart) {
            return errJSON(c, http.StatusBadRequest, "INVALID_DATE_RANGE",
                "End date must not precede start date")
        }
    }

    transitioned := false
    if upd.Status != nil {
        switch lifecycle.CheckBooking(existing.Status, *upd.Status) {
        case lifecycle.TransitionDenied:
            return errJSON(c, http.StatusConflict, "INVALID_TRANSITION",
                "Cannot move a "+existing.Status+" booking to "+*upd.Status)
        case lifecycle.TransitionAllowed:
            transitioned = true
        }
    }
    if transitioned {
        // Conditional on the status the transition was judged
        // against; a same-status noop write stays unconditional so a
        // zero-row update is not mistaken for a lost race.
        err = h.Bookings.UpdateFromStatus(ctx, id, existing.Status, upd.Fields)
    } else {
        err = h.Bookings.Update(ctx, id, upd.Fields)
    }
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return errJSON(c, http.StatusConflict, "CONFLICT",
                "Booking was modified concurrently; retry the request")
        }
        return internalError(c)
    }

    updated, err := h.Bookings.GetByID(ctx, id)
    if err != nil {
        return errJSON(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update booking")
    }

    if transitioned && h.Events != nil {
        _ = h.Events.PublishBookingStatusChanged(ctx, queue.BookingStatusChangedEvent{
            EventID:    uuid.NewString(),
            BookingID:  updated.ID,
            ResourceID: updated.ResourceID,
            FarmerID:   updated.FarmerID,
            OwnerID:    updated.OwnerID,
            FromStatus: existing.Status,
            ToStatus:   updated.Status,
            TotalPrice: updated.TotalPrice,
            ChangedAt:  time.Now().UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /bookings?id=.
func (h *BookingHandler) Delete(c echo.Context) error {
    id, ok := parseID(c.QueryParam("id"))
    if !ok {
        return errJSON(c, http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
    }

    ctx := c.Request().Context()
    existing, err := h.Bookings.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
        }
        return internalError(c)
    }
    if err := h.Bookings.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
        }
        return internalError(c)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "Booking deleted successfully",
        "booking": existing,
    })
}
