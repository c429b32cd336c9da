/* cmd/root.go */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cutover-sh/cutover/cmd/release"
	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/cutover-sh/cutover/pkg/logger"
)

// RootCmd is the base command for cutover.
var RootCmd = &cobra.Command{
	Use:   "cutover",
	Short: "Trunk-based semantic release automation",
	Long: `Cutover automates semantic-version releases for a trunk-based branching
model. It reads conventional-commit history to decide the warranted
version bump, cuts and advances release branches, and promotes release
candidate tags to final releases.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		release.ReleaseCutCmd,
		release.ReleaseCmd,
		release.RunCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command, mapping failures onto
// the classified exit codes.
func Execute() {
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
		}
	}()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if cutover_err.IsExpectedUserError(err) {
			logger.L().Warn("Run aborted", zap.Error(err))
		} else {
			logger.L().Error("Run failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(cutover_err.GetExitCode(err))
	}
}
