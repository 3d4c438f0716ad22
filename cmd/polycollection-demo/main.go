// Copyright 2018 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License. See the AUTHORS file
// for names of contributors.

// Command polycollection-demo runs the example collections in the demo
// package and prints their contents, as a smoke test that the base,
// open type-erasure and closed-alternatives models behave as documented.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/polycollection/demo"
	"github.com/spf13/cobra"
)

// settings is loaded from an optional TOML config file; it exists mainly
// to demonstrate wiring a config file into the CLI, since the demo
// collections themselves are fixed.
type settings struct {
	Verbose bool `toml:"verbose"`
}

func main() {
	var cfgFile string
	var cfg settings

	rootCmd := &cobra.Command{
		Use:   "polycollection-demo",
		Short: "run the polycollection demo collections and print their contents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				return nil
			}
			if _, err := toml.DecodeFile(cfgFile, &cfg); err != nil {
				return fmt.Errorf("reading config %s: %w", cfgFile, err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"optional TOML config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "targets",
			Short: "print the base-model Target collection",
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := demo.NewTargets()
				if err != nil {
					return err
				}
				for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
					if cfg.Verbose {
						log.Printf("type=%s value=%s", it.TypeID(), it.Value().Value())
					} else {
						fmt.Println(it.Value().Value())
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "mixed-bag",
			Short: "print the open type-erasure collection",
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := demo.NewMixedBag()
				if err != nil {
					return err
				}
				for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
					v := it.Value()
					fmt.Printf("%s: %v\n", v.Type(), v.Interface())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "scalars",
			Short: "print the closed-alternatives collection",
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := demo.NewScalars()
				if err != nil {
					return err
				}
				for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
					v := it.Value()
					fmt.Printf("%s=%v\n", v.Type(), v.Elem().Interface())
				}
				return nil
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
