// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/saferwall/blotter"
	"github.com/saferwall/blotter/log"
	"github.com/spf13/cobra"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "blottercli",
		Short: "Inspect and migrate Blotter save files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := log.ParseLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown --log-level %q: use debug, info, warn or error", logLevel)
			}
			blotter.SetLogger(log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(level)))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	rootCmd.AddCommand(inspectCmd(), migrateCmd(), versionCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print a save file's version and object counts as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closer, err := blotter.LoadFile(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			latest := blotter.Migrate(f)
			summary := struct {
				Version        byte `json:"version"`
				Components     int  `json:"components"`
				Wires          int  `json:"wires"`
				Mods           int  `json:"mods"`
				ComponentTypes int  `json:"component_types"`
				SaveType       int  `json:"save_type"`
			}{
				Version:        f.Version(),
				Components:     len(latest.Components),
				Wires:          len(latest.Wires),
				Mods:           len(latest.Mods),
				ComponentTypes: len(latest.ComponentTypes),
				SaveType:       int(latest.SaveType),
			}
			buf, err := json.Marshal(summary)
			if err != nil {
				return err
			}
			fmt.Println(prettyPrint(buf))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [in] [out]",
		Short: "Read a save, migrate it to the newest version, and write it out",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, closer, err := blotter.LoadFile(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			latest := blotter.Migrate(f)
			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer out.Close()
			if err := latest.Write(out); err != nil {
				return err
			}
			fmt.Printf("migrated %s: version %d -> %d, written to %s\n", args[0], f.Version(), latest.Version(), args[1])
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blottercli module version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(blotter.Version)
			return nil
		},
	}
}

// prettyPrint re-indents buf for terminal display, in the same
// json.Indent-over-bytes.Buffer style used by PE-dumper tooling in this
// ecosystem.
func prettyPrint(buf []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		return string(buf)
	}
	return pretty.String()
}
