package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wfcgen",
		Short: "Overlapping wave function collapse generator",
		Long: `wfcgen learns N×N patterns from a small sample image and grows a
larger image in which every window also occurs in the sample.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.AddCommand(newGenerateCmd(), newHarnessCmd())

	return rootCmd
}
