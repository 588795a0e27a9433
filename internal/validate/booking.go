package validate

import "github.com/agrigo/equipment-rental/internal/model"

// BookingCreate is the normalized input for requesting a rental.
// TotalPrice is stored verbatim; the server never recomputes it.
type BookingCreate struct {
    FarmerID   uint64
    ResourceID uint64
    OwnerID    uint64
    StartDate  string
    EndDate    string
    TotalPrice float64
    CropType   *string
    FarmStage  *string
    CropWeight *string
}

// BookingCreateInput validates a booking creation body. Presence is
// checked in the fixed order farmerId, resourceId, ownerId, startDate,
// endDate, totalPrice; value coercion follows in the order totalPrice,
// farmerId, resourceId, ownerId; date well-formedness and range close
// the sequence.
func BookingCreateInput(b Body) (*BookingCreate, *Rejection) {
    if !b.presentID("farmerId") {
        return nil, reject("MISSING_FARMER_ID", "Farmer ID is required")
    }
    if !b.presentID("resourceId") {
        return nil, reject("MISSING_RESOURCE_ID", "Resource ID is required")
    }
    if !b.presentID("ownerId") {
        return nil, reject("MISSING_OWNER_ID", "Owner ID is required")
    }
    start, okStart := b.requiredString("startDate")
    if !okStart {
        return nil, reject("MISSING_START_DATE", "Start date is required")
    }
    end, okEnd := b.requiredString("endDate")
    if !okEnd {
        return nil, reject("MISSING_END_DATE", "End date is required")
    }
    rawTotal, ok := b["totalPrice"]
    if !ok || isNull(rawTotal) {
        return nil, reject("MISSING_TOTAL_PRICE", "Total price is required")
    }
    total, ok := asNumber(rawTotal)
    if !ok || total < 0 {
        return nil, reject("INVALID_TOTAL_PRICE", "Total price must be a valid number")
    }
    farmerID, ok := asID(b["farmerId"])
    if !ok {
        return nil, reject("INVALID_FARMER_ID", "Farmer ID must be a valid integer")
    }
    resourceID, ok := asID(b["resourceId"])
    if !ok {
        return nil, reject("INVALID_RESOURCE_ID", "Resource ID must be a valid integer")
    }
    ownerID, ok := asID(b["ownerId"])
    if !ok {
        return nil, reject("INVALID_OWNER_ID", "Owner ID must be a valid integer")
    }
    if !validDate(start) {
        return nil, reject("INVALID_START_DATE", "Start date must be a YYYY-MM-DD calendar date")
    }
    if !validDate(end) {
        return nil, reject("INVALID_END_DATE", "End date must be a YYYY-MM-DD calendar date")
    }
    if DateBefore(end, start) {
        return nil, reject("INVALID_DATE_RANGE", "End date must not precede start date")
    }

    in := &BookingCreate{
        FarmerID:   farmerID,
        ResourceID: resourceID,
        OwnerID:    ownerID,
        StartDate:  start,
        EndDate:    end,
        TotalPrice: total,
    }
    in.CropType, _ = b.optionalString("cropType")
    in.FarmStage, _ = b.optionalString("farmStage")
    in.CropWeight, _ = b.optionalString("cropWeight")
    return in, nil
}

// BookingUpdate is the validated field set of a partial booking
// update. Status is exposed separately so the handler can run the
// lifecycle transition check against the stored state.
type BookingUpdate struct {
    Fields map[string]any
    Status *string
}

// BookingUpdateInput validates a partial booking update. Only present
// fields are validated; zero recognized fields reject as
// NO_UPDATE_FIELDS.
func BookingUpdateInput(b Body) (*BookingUpdate, *Rejection) {
    upd := &BookingUpdate{Fields: map[string]any{}}

    if raw, present := b["farmerId"]; present {
        id, ok := asID(raw)
        if !ok || isNull(raw) {
            return nil, reject("INVALID_FARMER_ID", "Farmer ID must be a valid integer")
        }
        upd.Fields["farmer_id"] = id
    }
    if raw, present := b["resourceId"]; present {
        id, ok := asID(raw)
        if !ok || isNull(raw) {
            return nil, reject("INVALID_RESOURCE_ID", "Resource ID must be a valid integer")
        }
        upd.Fields["resource_id"] = id
    }
    if raw, present := b["ownerId"]; present {
        id, ok := asID(raw)
        if !ok || isNull(raw) {
            return nil, reject("INVALID_OWNER_ID", "Owner ID must be a valid integer")
        }
        upd.Fields["owner_id"] = id
    }
    var start, end string
    if _, present := b["startDate"]; present {
        s, ok := b.requiredString("startDate")
        if !ok || !validDate(s) {
            return nil, reject("INVALID_START_DATE", "Start date must be a YYYY-MM-DD calendar date")
        }
        start = s
        upd.Fields["start_date"] = s
    }
    if _, present := b["endDate"]; present {
        s, ok := b.requiredString("endDate")
        if !ok || !validDate(s) {
            return nil, reject("INVALID_END_DATE", "End date must be a YYYY-MM-DD calendar date")
        }
        end = s
        upd.Fields["end_date"] = s
    }
    if start != "" && end != "" && DateBefore(end, start) {
        return nil, reject("INVALID_DATE_RANGE", "End date must not precede start date")
    }
    if raw, present := b["totalPrice"]; present {
        total, ok := asNumber(raw)
        if !ok || total < 0 {
            return nil, reject("INVALID_TOTAL_PRICE", "Total price must be a valid number")
        }
        upd.Fields["total_price"] = total
    }
    if raw, present := b["status"]; present && !isNull(raw) {
        status, ok := asString(raw)
        if !ok || !model.ValidBookingStatus(status) {
            return nil, reject("INVALID_STATUS", "Invalid status. Must be one of: pending, confirmed, completed, cancelled")
        }
        upd.Fields["status"] = status
        upd.Status = &status
    }
    if v, present := b.optionalString("cropType"); present {
        upd.Fields["crop_type"] = strPtrValue(v)
    }
    if v, present := b.optionalString("farmStage"); present {
        upd.Fields["farm_stage"] = strPtrValue(v)
    }
    if v, present := b.optionalString("cropWeight"); present {
        upd.Fields["crop_weight"] = strPtrValue(v)
    }

    if len(upd.Fields) == 0 {
        return nil, reject("NO_UPDATE_FIELDS", "No valid fields provided for update")
    }
    return upd, nil
}
