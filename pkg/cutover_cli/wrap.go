// pkg/cutover_cli/wrap.go

package cutover_cli

import (
	"context"

	cerr "github.com/cockroachdb/errors"
	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/cutover-sh/cutover/pkg/cutover_io"
	"github.com/cutover-sh/cutover/pkg/logger"
	"github.com/spf13/cobra"
)

// Wrap adapts a RuntimeContext handler into a cobra RunE, adding panic
// recovery, span lifecycle and expected-error handling.
func Wrap(fn func(rc *cutover_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.InitFallback()

		rc := cutover_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !cutover_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
