package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqplan/seqplan/internal/config"
	"github.com/seqplan/seqplan/internal/sequencer"
)

var validateCmd = &cobra.Command{
	Use:   "validate <sequence-file>",
	Short: "Check a sequence file without planning",
	Long: `Validates the structure of a sequence definition: blend radii must be
non-negative, the last segment's radius must be zero, and only the first
segment of each group may pin an explicit start state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.LoadSequence(args[0])
		if err != nil {
			return err
		}
		if err := sequencer.Validate(req.Items); err != nil {
			return fmt.Errorf("invalid sequence: %w", err)
		}
		fmt.Printf("Sequence OK: %d segment(s)\n", len(req.Items))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
