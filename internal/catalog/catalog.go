// Package catalog reads and validates item bank files.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pulsecheck/internal/model"
)

// ErrInvalidCatalog wraps every validation failure
var ErrInvalidCatalog = errors.New("invalid catalog")

// File is the on-disk layout of an item bank
type File struct {
	Version int        `yaml:"version"`
	Items   []FileItem `yaml:"items"`
}

// FileItem is one item as written in a catalog file
type FileItem struct {
	ID                  string   `yaml:"id"`
	Construct           string   `yaml:"construct"`
	ResponseType        string   `yaml:"response_type"`
	Intent              string   `yaml:"intent"`
	Tone                string   `yaml:"tone"`
	TemporalSensitivity string   `yaml:"temporal_sensitivity"`
	Prompt              string   `yaml:"prompt"`
	Scale               []int    `yaml:"scale,omitempty"`
	Options             []string `yaml:"options,omitempty"`
	Inactive            bool     `yaml:"inactive,omitempty"`
}

// LoadFile reads and validates the catalog at path
func LoadFile(path string) ([]model.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML catalog and validates it
func Load(r io.Reader) ([]model.Item, error) {
	var doc File
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	items := make([]model.Item, 0, len(doc.Items))
	for _, fi := range doc.Items {
		it := model.Item{
			ItemID:              fi.ID,
			Construct:           model.Construct(fi.Construct),
			ResponseType:        model.ResponseType(fi.ResponseType),
			Intent:              model.Intent(fi.Intent),
			Tone:                model.Tone(fi.Tone),
			TemporalSensitivity: model.TemporalSensitivity(fi.TemporalSensitivity),
			Prompt:              fi.Prompt,
			Options:             fi.Options,
			Version:             doc.Version,
			Active:              !fi.Inactive,
		}
		if len(fi.Scale) == 2 {
			it.ScaleMin, it.ScaleMax = fi.Scale[0], fi.Scale[1]
		}
		items = append(items, it)
	}
	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ValidateItem checks a single item's selection metadata
func ValidateItem(it model.Item) error {
	if it.ItemID == "" {
		return fmt.Errorf("%w: item without id", ErrInvalidCatalog)
	}
	if it.Construct == "" {
		return fmt.Errorf("%w: item %s has no construct", ErrInvalidCatalog, it.ItemID)
	}
	switch it.ResponseType {
	case model.ResponseRating, model.ResponseChoice, model.ResponseText:
	default:
		return fmt.Errorf("%w: item %s has unknown response type %q", ErrInvalidCatalog, it.ItemID, it.ResponseType)
	}
	switch it.Intent {
	case model.IntentExplore, model.IntentConfirm, model.IntentChallenge, model.IntentStabilize:
	default:
		return fmt.Errorf("%w: item %s has unknown intent %q", ErrInvalidCatalog, it.ItemID, it.Intent)
	}
	switch it.Tone {
	case model.ToneDiagnostic, model.ToneReflective, model.ToneBehavioral:
	default:
		return fmt.Errorf("%w: item %s has unknown tone %q", ErrInvalidCatalog, it.ItemID, it.Tone)
	}
	if it.TemporalSensitivity.Score() == 0 {
		return fmt.Errorf("%w: item %s has unknown temporal sensitivity %q", ErrInvalidCatalog, it.ItemID, it.TemporalSensitivity)
	}
	if it.ResponseType == model.ResponseRating && it.ScaleMax < it.ScaleMin {
		return fmt.Errorf("%w: item %s has scale %d..%d", ErrInvalidCatalog, it.ItemID, it.ScaleMin, it.ScaleMax)
	}
	return nil
}

// Validate checks every item and that ids are unique
func Validate(items []model.Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if err := ValidateItem(it); err != nil {
			return err
		}
		if seen[it.ItemID] {
			return fmt.Errorf("%w: duplicate item id %s", ErrInvalidCatalog, it.ItemID)
		}
		seen[it.ItemID] = true
	}
	return nil
}

// Active filters out retired items
func Active(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.Active {
			out = append(out, it)
		}
	}
	return out
}

// Constructs lists the constructs in items, in order of first appearance
func Constructs(items []model.Item) []model.Construct {
	seen := make(map[model.Construct]bool)
	var out []model.Construct
	for _, it := range items {
		if !seen[it.Construct] {
			seen[it.Construct] = true
			out = append(out, it.Construct)
		}
	}
	return out
}
