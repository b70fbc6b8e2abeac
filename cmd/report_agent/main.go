// Package main provides the entry point for the executive report generator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "report_agent",
	Short: "Executive leadership report generator",
	Long:  "report_agent turns a consultant's raw assessment notes and trait ratings into a polished executive report deck: expanded narrative, composite score bars, and radar charts populated into a pptx template.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger; verbose mode switches to the
// human-readable development encoder.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
