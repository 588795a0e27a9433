package validate

import "github.com/agrigo/equipment-rental/internal/model"

// ResourceCreate is the normalized input for listing a resource.
type ResourceCreate struct {
    OwnerID     uint64
    Name        string
    Type        string
    PricePerDay float64
    Location    string
    Description *string
    Capacity    *string
    Latitude    *float64
    Longitude   *float64
    ImageURL    *string
}

// ResourceCreateInput validates a resource creation body. Check order
// is fixed: ownerId, name, type, pricePerDay presence, pricePerDay
// value, location, ownerId value, latitude, longitude. Coordinates are
// range-checked on creation as well as update.
func ResourceCreateInput(b Body) (*ResourceCreate, *Rejection) {
    if !b.presentID("ownerId") {
        return nil, reject("MISSING_OWNER_ID", "ownerId is required")
    }
    name, ok := b.requiredString("name")
    if !ok {
        return nil, reject("MISSING_NAME", "name is required and must be a non-empty string")
    }
    typ, ok := b.requiredString("type")
    if !ok {
        return nil, reject("MISSING_TYPE", "type is required and must be a non-empty string")
    }
    rawPrice, ok := b["pricePerDay"]
    if !ok || isNull(rawPrice) {
        return nil, reject("MISSING_PRICE_PER_DAY", "pricePerDay is required")
    }
    price, ok := asNumber(rawPrice)
    if !ok || price < 0 {
        return nil, reject("INVALID_PRICE_PER_DAY", "pricePerDay must be a valid positive number")
    }
    location, ok := b.requiredString("location")
    if !ok {
        return nil, reject("MISSING_LOCATION", "location is required and must be a non-empty string")
    }
    ownerID, ok := asID(b["ownerId"])
    if !ok {
        return nil, reject("INVALID_OWNER_ID", "ownerId must be a valid number")
    }

    in := &ResourceCreate{
        OwnerID:     ownerID,
        Name:        name,
        Type:        typ,
        PricePerDay: price,
        Location:    location,
    }
    if raw, present := b["latitude"]; present && !isNull(raw) {
        lat, ok := asNumber(raw)
        if !ok || !latInRange(lat) {
            return nil, reject("INVALID_LATITUDE", "latitude must be a valid number between -90 and 90")
        }
        in.Latitude = &lat
    }
    if raw, present := b["longitude"]; present && !isNull(raw) {
        lon, ok := asNumber(raw)
        if !ok || !lonInRange(lon) {
            return nil, reject("INVALID_LONGITUDE", "longitude must be a valid number between -180 and 180")
        }
        in.Longitude = &lon
    }
    in.Description, _ = b.optionalString("description")
    in.Capacity, _ = b.optionalString("capacity")
    in.ImageURL, _ = b.optionalString("imageUrl")
    return in, nil
}

// ResourceUpdate is the validated field set of a partial resource
// update. Fields maps column names to new values; a nil value clears
// the column. Status and VerifiedBy are exposed separately for the
// lifecycle check in the handler.
type ResourceUpdate struct {
    Fields     map[string]any
    Status     *string
    VerifiedBy *uint64
    HasVerifiedBy bool // verifiedBy key present (value may be null)
}

// ResourceUpdateInput validates a partial resource update. Only fields
// present in the body are validated; both update entry points share
// this validator and its single code vocabulary. An update with zero
// recognized fields is rejected as NO_UPDATE_FIELDS.
func ResourceUpdateInput(b Body) (*ResourceUpdate, *Rejection) {
    upd := &ResourceUpdate{Fields: map[string]any{}}

    if _, present := b["name"]; present {
        name, ok := b.requiredString("name")
        if !ok {
            return nil, reject("INVALID_NAME", "name must be a non-empty string")
        }
        upd.Fields["name"] = name
    }
    if _, present := b["type"]; present {
        typ, ok := b.requiredString("type")
        if !ok {
            return nil, reject("INVALID_TYPE", "type must be a non-empty string")
        }
        upd.Fields["type"] = typ
    }
    if raw, present := b["pricePerDay"]; present {
        price, ok := asNumber(raw)
        if !ok || price < 0 {
            return nil, reject("INVALID_PRICE_PER_DAY", "pricePerDay must be a valid positive number")
        }
        upd.Fields["price_per_day"] = price
    }
    if _, present := b["location"]; present {
        location, ok := b.requiredString("location")
        if !ok {
            return nil, reject("INVALID_LOCATION", "location must be a non-empty string")
        }
        upd.Fields["location"] = location
    }
    if desc, present := b.optionalString("description"); present {
        upd.Fields["description"] = strPtrValue(desc)
    }
    if capv, present := b.optionalString("capacity"); present {
        upd.Fields["capacity"] = strPtrValue(capv)
    }
    if raw, present := b["latitude"]; present {
        if isNull(raw) {
            upd.Fields["latitude"] = nil
        } else {
            lat, ok := asNumber(raw)
            if !ok || !latInRange(lat) {
                return nil, reject("INVALID_LATITUDE", "latitude must be a valid number between -90 and 90")
            }
            upd.Fields["latitude"] = lat
        }
    }
    if raw, present := b["longitude"]; present {
        if isNull(raw) {
            upd.Fields["longitude"] = nil
        } else {
            lon, ok := asNumber(raw)
            if !ok || !lonInRange(lon) {
                return nil, reject("INVALID_LONGITUDE", "longitude must be a valid number between -180 and 180")
            }
            upd.Fields["longitude"] = lon
        }
    }
    if img, present := b.optionalString("imageUrl"); present {
        upd.Fields["image_url"] = strPtrValue(img)
    }
    if raw, present := b["status"]; present && !isNull(raw) {
        status, ok := asString(raw)
        if !ok || !model.ValidResourceStatus(status) {
            return nil, reject("INVALID_STATUS", "status must be one of: pending, verified, rejected")
        }
        upd.Fields["status"] = status
        upd.Status = &status
    }
    if raw, present := b["verifiedBy"]; present {
        upd.HasVerifiedBy = true
        if isNull(raw) {
            upd.Fields["verified_by"] = nil
        } else {
            id, ok := asID(raw)
            if !ok {
                return nil, reject("INVALID_VERIFIED_BY", "verifiedBy must be a valid number or null")
            }
            upd.Fields["verified_by"] = id
            upd.VerifiedBy = &id
        }
    }
    if raw, present := b["ownerId"]; present {
        id, ok := asID(raw)
        if !ok || isNull(raw) {
            return nil, reject("INVALID_OWNER_ID", "ownerId must be a valid number")
        }
        upd.Fields["owner_id"] = id
    }

    if len(upd.Fields) == 0 {
        return nil, reject("NO_UPDATE_FIELDS", "No valid fields provided for update")
    }
    return upd, nil
}

// strPtrValue converts an optional string to a driver-friendly value;
// nil clears the column.
func strPtrValue(s *string) any {
    if s == nil {
        return nil
    }
    return *s
}
