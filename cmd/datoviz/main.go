// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command datoviz is the CLI entry point for the GPU visualization
// engine: "demo" opens a window driving a small built-in scene, "info"
// prints build/version/GPU information and exits (spec.md §6 "CLI
// (datoviz demo|info, exit codes 0/1/2)").
package main

import "datoviz.org/dvz/cmd/datoviz/cmd"

func main() {
	cmd.Execute()
}
