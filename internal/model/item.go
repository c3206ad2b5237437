package model

import "time"

// ResponseType defines how an item is answered
type ResponseType string

const (
	ResponseRating ResponseType = "rating" // Likert/slider
	ResponseChoice ResponseType = "choice" // single/multi choice
	ResponseText   ResponseType = "text"   // free text
)

// Intent is an item's measurement purpose
type Intent string

const (
	IntentExplore   Intent = "explore"
	IntentConfirm   Intent = "confirm"
	IntentChallenge Intent = "challenge"
	IntentStabilize Intent = "stabilize"
)

// Tone is an item's framing register
type Tone string

const (
	ToneDiagnostic Tone = "diagnostic"
	ToneReflective Tone = "reflective"
	ToneBehavioral Tone = "behavioral"
)

// TemporalSensitivity is how much an item's validity depends on recency
type TemporalSensitivity string

const (
	SensitivityLow    TemporalSensitivity = "low"
	SensitivityMedium TemporalSensitivity = "medium"
	SensitivityHigh   TemporalSensitivity = "high"
)

// Score orders sensitivities low < medium < high (1/2/3). Unknown values score 0.
func (s TemporalSensitivity) Score() int {
	switch s {
	case SensitivityLow:
		return 1
	case SensitivityMedium:
		return 2
	case SensitivityHigh:
		return 3
	}
	return 0
}

// Item is a catalog entry. Only Construct, Intent, Tone and
// TemporalSensitivity matter for selection; the rest rides along for the
// presentation layer.
type Item struct {
	ItemID              string              `json:"itemId" bson:"item_id"`
	Construct           Construct           `json:"construct" bson:"construct"`
	ResponseType        ResponseType        `json:"responseType" bson:"response_type"`
	Intent              Intent              `json:"intent" bson:"intent"`
	Tone                Tone                `json:"tone" bson:"tone"`
	TemporalSensitivity TemporalSensitivity `json:"temporalSensitivity" bson:"temporal_sensitivity"`

	// Response shape
	Prompt   string   `json:"prompt" bson:"prompt"`
	ScaleMin int      `json:"scaleMin,omitempty" bson:"scale_min,omitempty"` // rating only
	ScaleMax int      `json:"scaleMax,omitempty" bson:"scale_max,omitempty"` // rating only
	Options  []string `json:"options,omitempty" bson:"options,omitempty"`    // choice only

	Version   int       `json:"version" bson:"version"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
