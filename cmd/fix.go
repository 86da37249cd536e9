package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tsquiet.dev/pkg/tsquiet/internal/domain"
	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

var fixVerifyFlag bool
var fixDryRunFlag bool

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Fix unused-variable diagnostics",
		Long:  fixLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun := viper.GetBool(fixDryRunKey)

			workflow, err := newWorkflow(cmd, dryRun)
			if err != nil {
				return err
			}

			return workflow.Fix(cmd.Context(), domain.FixArgs{
				Verify:  viper.GetBool(fixVerifyKey),
				DryRun:  dryRun,
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureFixFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func configureFixFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&fixVerifyFlag, verifyFlagName, viper.GetBool(fixVerifyKey), "re-run the build afterwards and report remaining TS6133 errors")
	bindFlagToConfig(cmd.Flags().Lookup(verifyFlagName), fixVerifyKey)

	cmd.Flags().BoolVar(&fixDryRunFlag, dryRunFlagName, viper.GetBool(fixDryRunKey), "report what would be fixed without writing files")
	bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), fixDryRunKey)
}
