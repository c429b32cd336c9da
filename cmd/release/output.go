// cmd/release/output.go

package release

import (
	"fmt"
	"os"

	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/cutover-sh/cutover/pkg/cutover_io"
	relengine "github.com/cutover-sh/cutover/pkg/release"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// emitOutputs prints the run's outputs to stdout and, when GITHUB_OUTPUT
// is set, appends them there so the surrounding workflow can consume
// them. Outputs only exist on full success.
func emitOutputs(rc *cutover_io.RuntimeContext, outputs relengine.Outputs) error {
	otelzap.Ctx(rc.Ctx).Info("Run succeeded",
		zap.String("next_version", outputs.NextVersion),
		zap.String("previous_version", outputs.PreviousVersion),
		zap.String("previous_stable_version", outputs.PreviousStableVersion))

	lines := fmt.Sprintf("next-version=%s\nprevious-version=%s\nprevious-stable-version=%s\n",
		outputs.NextVersion, outputs.PreviousVersion, outputs.PreviousStableVersion)

	fmt.Print(lines)

	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return cutover_err.NewSystemError("could not open GITHUB_OUTPUT file", err)
		}
		defer f.Close()
		if _, err := f.WriteString(lines); err != nil {
			return cutover_err.NewSystemError("could not write GITHUB_OUTPUT file", err)
		}
	}
	return nil
}
