package model

// SelectionRequest is the input to one selector call
type SelectionRequest struct {
	TargetCount      int                  `json:"targetCount"`
	Contexts         []MeasurementContext `json:"contexts"`
	ItemBank         []Item               `json:"-"`
	RecentConstructs []Construct          `json:"recentConstructs"`
}

// PickSource says which phase produced a selected item
type PickSource string

const (
	PickFresh  PickSource = "fresh"  // per-construct selection
	PickPad    PickSource = "pad"    // padding to target count
	PickStatic PickSource = "static" // adaptive selection switched off
)

// SelectedItem is an output item plus where it came from
type SelectedItem struct {
	Item    Item       `json:"item"`
	Source  PickSource `json:"source"`
	Relaxed bool       `json:"relaxed,omitempty"` // picked after dropping the temporal-sensitivity rule
}

// MixAudit reports the tone/intent mix of a selection. Advisory only.
type MixAudit struct {
	Total              int     `json:"total"`
	BehavioralCount    int     `json:"behavioralCount"`
	ChallengeCount     int     `json:"challengeCount"`
	BehavioralFraction float64 `json:"behavioralFraction"`
	ChallengeFraction  float64 `json:"challengeFraction"`
	BehavioralCeiling  float64 `json:"behavioralCeiling"`
	ChallengeCeiling   float64 `json:"challengeCeiling"`
	BehavioralExceeded bool    `json:"behavioralExceeded"`
	ChallengeExceeded  bool    `json:"challengeExceeded"`
}

// Exceeded reports whether either advisory ceiling was crossed
func (a MixAudit) Exceeded() bool {
	return a.BehavioralExceeded || a.ChallengeExceeded
}

// SelectionResult is the ordered output of one selector call
type SelectionResult struct {
	Selected   []SelectedItem `json:"selected"`
	Candidates []Construct    `json:"candidates"` // phase A order, after truncation
	Blocked    []Construct    `json:"blocked,omitempty"`
	PadRounds  int            `json:"padRounds"`
	Audit      MixAudit       `json:"audit"`
}

// Items returns the selected items in output order
func (r SelectionResult) Items() []Item {
	items := make([]Item, 0, len(r.Selected))
	for _, s := range r.Selected {
		items = append(items, s.Item)
	}
	return items
}
