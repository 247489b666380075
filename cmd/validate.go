package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/validate"
)

var validateDir string

// validateCmd checks shard structure and key uniqueness.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check shard files for structure and key uniqueness",
	Long: `Validate checks every shard in the translation corpus (or the
directory given with --dir) for the required key/text/tooltip column
shape, empty keys, and duplicate keys. Empty keys are warnings; duplicate
keys and bad shapes are errors and make the command exit non-zero.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateDir, "dir", "d", "", "Directory to check (default: translation corpus)")
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}

	dir := validateDir
	if dir == "" {
		dir = cfg.Paths.TranslationDB
	}
	l.Info("checking TSV shards", zap.String("dir", dir))

	findings, err := validate.CheckDir(dir)
	if err != nil {
		return err
	}
	for _, f := range findings {
		if f.Severity >= validate.Error {
			l.Error("validation finding", zap.String("finding", f.String()))
		} else {
			l.Warn("validation finding", zap.String("finding", f.String()))
		}
	}

	if validate.Blocking(findings) {
		return fmt.Errorf("validation finished with errors")
	}
	if len(findings) > 0 {
		l.Warn("validation finished with warnings")
		return nil
	}
	l.Info("all files are valid")
	return nil
}
