package validate

import (
	"strconv"
	"strings"
)

// Recommend is the normalized input for an equipment suggestion.
type Recommend struct {
	CropType   string
	FarmStage  string
	CropWeight string
}

// RecommendInput validates a suggestion request. cropType and
// farmStage are required; cropWeight is optional and may arrive as a
// number or a string like "1500 kg".
func RecommendInput(b Body) (*Recommend, *Rejection) {
	crop, ok := b.requiredString("cropType")
	if !ok {
		return nil, reject("MISSING_CROP_TYPE", "cropType and farmStage are required fields")
	}
	stage, ok := b.requiredString("farmStage")
	if !ok {
		return nil, reject("MISSING_FARM_STAGE", "cropType and farmStage are required fields")
	}

	weight := ""
	if raw, present := b["cropWeight"]; present && !isNull(raw) {
		if s, isStr := asString(raw); isStr {
			weight = strings.TrimSpace(s)
		} else if n, isNum := asNumber(raw); isNum {
			weight = strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	return &Recommend{CropType: crop, FarmStage: stage, CropWeight: weight}, nil
}
