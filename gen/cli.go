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

package gen

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// buildID is set by a linker flag.
var buildID = "dev"

// Main is the entry point for the polycollection-gen tool. It is invoked
// from a main() in the cmd/polycollection-gen package.
func Main() error {
	var cfg config
	rootCmd := &cobra.Command{
		Use: "polycollection-gen",
		Short: `polycollection-gen scans a package for an interface and emits a
poly.Collection registry of its implementors.
https://github.com/cockroachdb/polycollection`,
		Example: `
polycollection-gen InterfaceName
  Scans the current directory for every exported struct type that
  implements InterfaceName and writes a registry file wiring them into
  a poly.Collection[InterfaceName].
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.typeName = args[0]
			return newGeneration(cfg).Execute()
		},
	}

	rootCmd.Flags().StringVarP(&cfg.dir, "dir", "d", ".",
		"the directory to operate in")

	rootCmd.Flags().StringVarP(&cfg.outFile, "out", "o", "",
		"overrides the output file name")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("polycollection-gen version %s; %s", buildID, runtime.Version())
			},
		})

	return rootCmd.Execute()
}
