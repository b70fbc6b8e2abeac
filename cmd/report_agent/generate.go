package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/report-engine/internal/config"
	"github.com/jonathan/report-engine/internal/pipeline"
	"github.com/jonathan/report-engine/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an executive report from a request JSON file",
	Long: `Reads a report request (candidate details, raw notes, ratings) from a JSON
file, expands the narrative, scores the traits, renders the radar charts, and
writes the populated pptx deck.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runGenerate,
}

var (
	generateConfigPath string
	generateRequest    string
	generateTemplate   string
	generateOutputDir  string
	generateAPIKey     string
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCmd.Flags().StringVarP(&generateRequest, "request", "r", "", "Path to report request JSON file")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Path to pptx report template")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Directory the finished report is written to")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveGenerateConfig(cmd)
	if err != nil {
		return err
	}

	req, err := loadRequest(cfg.Request)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Request:      req,
		TemplatePath: cfg.Template,
		OutputDir:    cfg.OutputDir,
		APIKey:       cfg.APIKey,
		Verbose:      cfg.Verbose,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Report written to %s\n", result.OutputPath)
	return nil
}

// resolveGenerateConfig merges config file, CLI flags, defaults, and the
// environment, in ascending priority of flags over file over defaults.
func resolveGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if generateConfigPath != "" {
		loaded, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if generateVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", generateConfigPath)
		}
	}

	// CLI overrides apply only when the flag was explicitly set
	if cmd.Flags().Changed("request") {
		cfg.Request = generateRequest
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = generateTemplate
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = generateOutputDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = generateAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = generateVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Template:  "templates/executive_report.pptx",
		OutputDir: "out",
	})

	if cfg.Request == "" {
		return cfg, fmt.Errorf("--request is required (via flag or config)")
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	return cfg, nil
}

// loadRequest reads and decodes a report request file. Unknown fields are
// rejected so a typo in a rating key fails loudly instead of silently
// dropping the rating.
func loadRequest(path string) (*types.ReportRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open request file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var req types.ReportRequest
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse request file %s: %w", path, err)
	}
	return &req, nil
}
