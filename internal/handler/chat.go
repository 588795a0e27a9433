package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/agrigo/equipment-rental/internal/model"
    "github.com/agrigo/equipment-rental/internal/repository"
    "github.com/agrigo/equipment-rental/internal/validate"
)

// ChatHandler serves the per-booking message log. The log is
// append-only and read back in send order; clients poll the list
// endpoint on an interval.
type ChatHandler struct {
    Chat     ChatStore
    Bookings BookingStore
}

func NewChatHandler(chat ChatStore, bookings BookingStore) *ChatHandler {
    if chat == nil || bookings == nil {
        panic("nil store passed to NewChatHandler")
    }
    return &ChatHandler{Chat: chat, Bookings: bookings}
}

// List handles GET /chat/:bookingId. Messages come back oldest first;
// an unknown booking yields an empty list, which keeps polling cheap.
func (h *ChatHandler) List(c echo.Context) error {
    bookingID, ok := parseID(c.Param("bookingId"))
    if !ok {
        return errJSON(c, http.StatusBadRequest, "INVALID_BOOKING_ID", "Valid booking ID is required")
    }
    limit := parseLimit(c.QueryParam("limit"), 50)
    offset := parseOffset(c.QueryParam("offset"))

    msgs, err := h.Chat.ListByBooking(c.Request().Context(), bookingID, limit, offset)
    if err != nil {
        return internalError(c)
    }
    return c.JSON(http.StatusOK, msgs)
}

// Send handles POST /chat. The booking must exist and the sender must
// be one of its two parties.
func (h *ChatHandler) Send(c echo.Context) error {
    body, rej := validate.ParseBody(c.Request().Body)
    if rej != nil {
        return rejectJSON(c, rej)
    }
    in, rej := validate.ChatSendInput(body)
    if rej != nil {
        return rejectJSON(c, rej)
    }

    ctx := c.Request().Context()
    booking, err := h.Bookings.GetByID(ctx, in.BookingID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errJSON(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
        }
        return internalError(c)
    }
    if in.SenderID != booking.FarmerID && in.SenderID != booking.OwnerID {
        return errJSON(c, http.StatusForbidden, "SENDER_NOT_PARTICIPANT",
            "Sender must be the booking's farmer or owner")
    }

    m := model.ChatMessage{
        BookingID: in.BookingID,
        SenderID:  in.SenderID,
        Message:   in.Message,
    }
    if err := h.Chat.Create(ctx, &m); err != nil {
        return internalError(c)
    }
    return c.JSON(http.StatusCreated, m)
}
