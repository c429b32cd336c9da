package main

import (
	"fmt"
	"os"

	"github.com/cutover-sh/cutover/cmd"
	"github.com/cutover-sh/cutover/pkg/logger"
	"github.com/cutover-sh/cutover/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()

	if err := telemetry.Init("cutover"); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry disabled: %v\n", err)
	}

	cmd.Execute()
}
