// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"datoviz.org/dvz/gpu"
	"datoviz.org/dvz/internal/version"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print version, protocol, and GPU adapter information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.String())

		gp := gpu.NewGPU()
		if err := gp.Config("datoviz-info"); err != nil {
			fmt.Printf("gpu: no adapter available: %v\n", err)
			return nil
		}
		defer gp.Release()
		fmt.Print(gp.PropertiesString())
		return nil
	},
}
