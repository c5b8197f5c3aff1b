package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mapffair",
	Short: "Fairness-aware multi-agent pathfinding on grids",
	Long: `mapffair plans collision-free paths for multiple agents on 4-connected
grids using Conflict-Based Search, with optional fairness objectives that
weight or bound each agent's path stretch.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(solveCmd, genCmd, benchCmd)
}
