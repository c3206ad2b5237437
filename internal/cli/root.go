// Package cli implements the itembank maintenance commands.
package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pulsecheck/internal/config"
	"pulsecheck/internal/logging"
)

// NewRootCmd builds the itembank command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "itembank",
		Short:        "Maintain and exercise the check-in item bank",
		Long:         "Validate catalog files, seed them into MongoDB, and run the session selector offline.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newValidateCmd(),
		newSeedCmd(),
		newSimulateCmd(),
	)
	return root
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// commandLogger returns a logger at the configured level, or a no-op logger
// when configuration cannot be read.
func commandLogger(cfg *config.Config) *zap.Logger {
	if cfg == nil {
		return zap.NewNop()
	}
	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
