// Package recommend scores equipment type suggestions for a farm
// profile. It is a rule table, not a trained model, but it keeps the
// response shape of one so the client contract holds if a real model
// replaces it.
package recommend

import (
	"strconv"
	"strings"
	"time"
)

const modelVersion = "1.0"

// stageEquipment maps a farm stage to the equipment types that stage
// typically needs, strongest match first.
var stageEquipment = map[string][]string{
	"land-preparation": {"tractor", "cultivator"},
	"sowing":           {"planter", "tractor"},
	"maintenance":      {"sprayer", "tractor"},
	"harvesting":       {"harvester", "tractor"},
	"post-harvest":     {"tractor", "sprayer"},
}

// fallbackEquipment covers stages the table does not know.
var fallbackEquipment = []string{"tractor", "harvester", "planter", "sprayer"}

// Weights each input contributes to the suggestion. Reported to the
// client as feature importance.
var featureImportance = map[string]float64{
	"crop_type":   0.35,
	"farm_stage":  0.45,
	"crop_weight": 0.20,
}

// Prediction is the full recommendation payload.
type Prediction struct {
	Success          bool     `json:"success"`
	RecommendedTypes []string `json:"recommendedTypes"`
	Confidence       float64  `json:"confidence"`
	Message          string   `json:"message"`
	Metadata         Metadata `json:"metadata"`
}

// Metadata echoes the inputs and describes how the suggestion was
// produced.
type Metadata struct {
	CropType          string             `json:"cropType"`
	FarmStage         string             `json:"farmStage"`
	CropWeight        string             `json:"cropWeight"`
	ModelVersion      string             `json:"modelVersion"`
	Timestamp         string             `json:"timestamp"`
	FeatureImportance map[string]float64 `json:"featureImportance"`
	AlternativeTypes  []string           `json:"alternativeTypes"`
}

// Predict returns equipment suggestions for the given crop and stage.
// Inputs are matched case-insensitively; cropWeight is free text and
// only its leading number is read. Larger harvests raise confidence
// because stage rules fit heavy-volume operations best.
func Predict(cropType, farmStage, cropWeight string) Prediction {
	stage := strings.ToLower(strings.TrimSpace(farmStage))
	crop := strings.ToLower(strings.TrimSpace(cropType))

	types, known := stageEquipment[stage]
	if !known {
		types = fallbackEquipment
	}
	recommended := make([]string, len(types))
	copy(recommended, types)

	confidence := 0.85
	if w, ok := leadingFloat(cropWeight); ok {
		switch {
		case w > 1000:
			confidence = 0.92
		case w > 500:
			confidence = 0.88
		}
	}

	return Prediction{
		Success:          true,
		RecommendedTypes: recommended,
		Confidence:       confidence,
		Message:          "Recommended equipment for " + crop + " at " + stage + " stage",
		Metadata: Metadata{
			CropType:          crop,
			FarmStage:         stage,
			CropWeight:        cropWeight,
			ModelVersion:      modelVersion,
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
			FeatureImportance: featureImportance,
			AlternativeTypes:  []string{"cultivator", "other"},
		},
	}
}

// leadingFloat parses the number a string starts with, so "1500 kg"
// and "1500" both read as 1500.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || (end == 0 && (ch == '-' || ch == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
