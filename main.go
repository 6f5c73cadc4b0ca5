/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/stackpilot/stackpilot/cmd"
	"github.com/stackpilot/stackpilot/internal/version"
)

func main() {
	if err := fang.Execute(context.Background(), cmd.Root(), fang.WithVersion(version.Short())); err != nil {
		os.Exit(1)
	}
}
