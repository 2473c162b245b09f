// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the datoviz CLI's cobra command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"datoviz.org/dvz/internal/config"
	"datoviz.org/dvz/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "datoviz",
	Short: "GPU-accelerated scientific visualization engine",
	Long:  `datoviz drives a declarative GPU request protocol through a renderer, frame loop, and input/gesture/interactor stack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command, exiting 0 on success, 1 on a command
// error, 2 on a usage error (spec.md §6 "exit codes: 0 success, 1
// fatal, 2 usage").
func Execute() {
	rootCmd.SilenceUsage = false
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })
	rootCmd.Args = cobra.NoArgs
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		if validate := c.Args; validate != nil {
			c.Args = func(cmd *cobra.Command, args []string) error {
				if err := validate(cmd, args); err != nil {
					return usageError{err}
				}
				return nil
			}
		}
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if usageErr, ok := err.(usageError); ok {
			_ = usageErr
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// usageError marks an error from flag/argument parsing (cobra's flag
// and positional-argument checks, wrapped in Execute, and demo's --args
// tokenizing) as a usage error rather than a runtime failure, so
// Execute can tell them apart for the exit-code contract.
type usageError struct{ error }

func newUsageError(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// loadConfig reads the on-disk config, logging (not failing) if it is
// malformed, and returns the defaults in that case: a missing or
// unreadable config file is never a fatal CLI error.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warnf("config: %v, using defaults", err)
		return config.Default()
	}
	return cfg
}
