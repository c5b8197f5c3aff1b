// Command mapffair solves, generates and benchmarks grid MAPF instances
// with fairness-aware Conflict-Based Search.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
