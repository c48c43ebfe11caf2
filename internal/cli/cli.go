// Package cli implements the ouroboros command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ouroboros-ml/ouroboros/internal/autodiff"
	"github.com/ouroboros-ml/ouroboros/internal/envconfig"
	"github.com/ouroboros-ml/ouroboros/internal/funcs"
	"github.com/ouroboros-ml/ouroboros/internal/logutil"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "v0.1.0-dev"

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "ouroboros",
		Short:         "Reverse-mode automatic differentiation",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel()))
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	gradCmd := &cobra.Command{
		Use:   "grad FUNC",
		Short: "Evaluate a function and its gradient",
		Args:  cobra.ExactArgs(1),
		RunE:  GradHandler,
	}
	gradCmd.Flags().String("at", "", "Input point as JSON (number or nested arrays); defaults to the function's example")

	checkCmd := &cobra.Command{
		Use:   "check [FUNC...]",
		Short: "Compare gradients against finite differences",
		RunE:  CheckHandler,
	}
	checkCmd.Flags().String("at", "", "Input point as JSON; defaults to each function's example")
	checkCmd.Flags().Float64("epsilon", 0, "Finite-difference step (default OUROBOROS_EPSILON)")
	checkCmd.Flags().Float64("tolerance", 0, "Maximum absolute error (default OUROBOROS_TOLERANCE)")

	funcsCmd := &cobra.Command{
		Use:     "funcs",
		Aliases: []string{"ls"},
		Short:   "List built-in functions",
		Args:    cobra.NoArgs,
		RunE:    FuncsHandler,
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show configuration variables",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}

	envVars := envconfig.AsMap()
	appendEnvDocs(gradCmd, []envconfig.EnvVar{envVars["OUROBOROS_DEBUG"]})
	appendEnvDocs(checkCmd, []envconfig.EnvVar{
		envVars["OUROBOROS_DEBUG"],
		envVars["OUROBOROS_EPSILON"],
		envVars["OUROBOROS_TOLERANCE"],
		envVars["OUROBOROS_PARALLEL"],
	})

	rootCmd.AddCommand(
		gradCmd,
		checkCmd,
		funcsCmd,
		envCmd,
		versionCmd,
	)

	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "ouroboros version is %s\n", Version)
}

// parseInput returns the input point for e: the --at JSON if given,
// otherwise the entry's example.
func parseInput(cmd *cobra.Command, e funcs.Entry) (*autodiff.Value, error) {
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return autodiff.AsValue(e.Example)
	}

	var v any
	if err := json.Unmarshal([]byte(at), &v); err != nil {
		return nil, fmt.Errorf("--at: %w", err)
	}
	x, err := autodiff.AsValue(v)
	if err != nil {
		return nil, fmt.Errorf("--at: %w", err)
	}
	return x, nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}
