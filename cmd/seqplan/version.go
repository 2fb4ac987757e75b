package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqplan/seqplan"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of seqplan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("seqplan version %s\n", strings.TrimSpace(seqplan.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
