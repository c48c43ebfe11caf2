// Copyright 2025 Ouroboros Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package main provides the ouroboros CLI.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ouroboros-ml/ouroboros/internal/cli"
)

func main() {
	cobra.CheckErr(cli.NewCLI().ExecuteContext(context.Background()))
}
