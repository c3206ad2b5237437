package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pulsecheck/internal/catalog"
	"pulsecheck/internal/config"
	"pulsecheck/internal/measure"
	"pulsecheck/internal/model"
	"pulsecheck/internal/selector"
)

// Scenario is a respondent's state as written in a simulate contexts file
type Scenario struct {
	Recent     []model.Construct   `yaml:"recent"`
	Constructs []ScenarioConstruct `yaml:"constructs"`
}

// ScenarioConstruct is one construct's estimator summary
type ScenarioConstruct struct {
	Construct      model.Construct `yaml:"construct"`
	measure.Summary `yaml:",inline"`
}

// SimulateOutput is what simulate prints
type SimulateOutput struct {
	Seed     int64                      `json:"seed"`
	Now      time.Time                  `json:"now"`
	Contexts []model.MeasurementContext `json:"contexts"`
	Result   model.SelectionResult      `json:"result"`
}

func newSimulateCmd() *cobra.Command {
	var (
		contextsPath string
		count        int
		seed         int64
		nowFlag      string
		maxPad       int
	)

	cmd := &cobra.Command{
		Use:   "simulate FILE",
		Short: "Run the selector offline against a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}

			var sc Scenario
			if contextsPath != "" {
				if sc, err = loadScenario(contextsPath); err != nil {
					return err
				}
			}

			now := time.Now().UTC()
			if nowFlag != "" {
				if now, err = time.Parse(time.RFC3339, nowFlag); err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
			}
			if !cmd.Flags().Changed("seed") {
				seed = selector.NewSeed()
			}
			if maxPad <= 0 {
				maxPad = config.Default().Selection.MaxPadIterations
			}

			contexts := make([]model.MeasurementContext, 0, len(sc.Constructs))
			for _, c := range sc.Constructs {
				contexts = append(contexts, measure.BuildContext(c.Construct, c.Summary))
			}

			cfg := selector.DefaultConfig()
			cfg.MaxPadIterations = maxPad
			cfg.Clock = func() time.Time { return now }

			result := selector.New(cfg).Select(model.SelectionRequest{
				TargetCount:      count,
				Contexts:         contexts,
				ItemBank:         catalog.Active(items),
				RecentConstructs: sc.Recent,
			}, selector.NewSeededSource(seed))

			return writeJSON(cmd.OutOrStdout(), SimulateOutput{
				Seed:     seed,
				Now:      now,
				Contexts: contexts,
				Result:   result,
			})
		},
	}

	cmd.Flags().StringVar(&contextsPath, "contexts", "", "YAML file with recent constructs and per-construct summaries")
	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of items to select")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: random)")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluation time, RFC3339 (default: current time)")
	cmd.Flags().IntVar(&maxPad, "max-pad-iterations", 0, "Padding loop bound (default: server default)")
	return cmd
}

func loadScenario(path string) (Scenario, error) {
	var sc Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, err
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parse %s: %w", path, err)
	}
	return sc, nil
}
