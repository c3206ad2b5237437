package cli

import (
	"github.com/spf13/cobra"

	"pulsecheck/internal/catalog"
	"pulsecheck/internal/model"
)

// ValidateReport summarizes a catalog file
type ValidateReport struct {
	OK           bool                    `json:"ok"`
	Items        int                     `json:"items"`
	Active       int                     `json:"active"`
	Constructs   []model.Construct       `json:"constructs"`
	PerConstruct map[model.Construct]int `json:"perConstruct"`
	PadItems     int                     `json:"padItems"`
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a YAML catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), buildReport(items))
		},
	}
}

func buildReport(items []model.Item) ValidateReport {
	active := catalog.Active(items)
	r := ValidateReport{
		OK:           true,
		Items:        len(items),
		Active:       len(active),
		Constructs:   catalog.Constructs(active),
		PerConstruct: make(map[model.Construct]int),
	}
	for _, it := range active {
		r.PerConstruct[it.Construct]++
		if it.Intent == model.IntentExplore && it.Tone == model.ToneDiagnostic {
			r.PadItems++
		}
	}
	return r
}
