// Package cmd provides the root command and CLI setup for tsquiet.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tsquiet.dev/pkg/tsquiet/internal/adapter"
	"tsquiet.dev/pkg/tsquiet/internal/controller"
	"tsquiet.dev/pkg/tsquiet/internal/domain"
)

var buildRunner adapter.BuildRunner
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore

// projectRootFlag is a root-level flag naming the TypeScript project directory.
var projectRootFlag string

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters diagnostics by file path.
var excludePatterns []string

// verboseFlag switches logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	buildRunner = adapter.NewLocalBuildRunner()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
}

const rootLongDescription = `Tsquiet silences TypeScript TS6133 unused-variable diagnostics by
prefixing the offending identifiers with an underscore. It runs your
project's build, parses the compiler output, rewrites the reported lines,
and can re-run the build to verify how many diagnostics remain.

The rewrites are lexical (regex over the reported line), so shadowed names,
multi-line declarations and identifiers quoted inside strings or comments
are out of reach; whatever stays unfixed is reported, never fatal.`

const fixLongDescription = `Run the project build, collect TS6133 diagnostics, and rewrite each
reported line to underscore-prefix the unused identifier.

Files are processed in path order; within a file, diagnostics are patched
from the highest line number down so earlier edits never shift the
positions of later ones. The command exits zero even when diagnostics
remain unfixed.`

const listLongDescription = `Run the project build and list TS6133 diagnostics per file without
modifying anything.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tsquiet",
		Short: "Silence TypeScript unused-variable diagnostics",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&projectRootFlag, rootFlagName, "r",
			viper.GetString(projectRootKey),
			"TypeScript project directory (build working directory and path root)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rootFlagName), projectRootKey)

	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run summaries",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude diagnostics in files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// buildConfigFromViper assembles the build invocation from the resolved
// config/flag/env values.
func buildConfigFromViper() domain.BuildConfig {
	return domain.BuildConfig{
		Root:    viper.GetString(projectRootKey),
		Command: viper.GetString(buildCommandKey),
		Args:    viper.GetStringSlice(buildArgsKey),
		Exclude: viper.GetStringSlice(excludeConfigKey),
	}
}

// newWorkflow wires the pipeline for one command invocation. Tests swap it
// out to observe the arguments commands pass down.
var newWorkflow = func(cmd *cobra.Command, dryRun bool) (domain.Workflow, error) {
	config := buildConfigFromViper()

	collector, err := domain.NewCollector(buildRunner, config)
	if err != nil {
		return nil, err
	}

	ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout))
	patcher := domain.NewPatcher(fsAdapter, config.Root, dryRun)
	orchestrator := domain.NewOrchestrator(patcher, ui)

	return domain.NewWorkflow(collector, orchestrator, reportStore, ui), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
