package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/screening-recommender/internal/config"
	"github.com/screening-recommender/internal/domain"
	"github.com/screening-recommender/internal/service"
	"github.com/screening-recommender/internal/setup"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "screening-cli",
		Short:         "Score mental-health screenings and recommend intervention tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default searches ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	rootCmd.AddCommand(analyzeCmd(opts))
	rootCmd.AddCommand(recommendCmd(opts))
	rootCmd.AddCommand(validateCmd(opts))

	return rootCmd
}

// load reads and validates configuration, and builds a logger writing to
// the command's stderr so stdout stays machine-readable.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Manager, *logrus.Logger, error) {
	manager, err := config.NewManagerWithFile(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := manager.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	logging := manager.GetConfig().Logging
	if o.logLevel != "" {
		logging.Level = o.logLevel
	}
	return manager, config.NewLogger(logging, cmd.ErrOrStderr()), nil
}

func analyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		client    domain.ClientIdentity
		withTrace bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full screening analysis for one client",
		Example: `  screening-cli analyze --first-name Jane --last-name Doe
  screening-cli analyze --first-name Jane --last-name Doe --suffix Jr. --trace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Validate(); err != nil {
				return err
			}

			manager, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			components, err := setup.Build(manager.GetConfig(), logger)
			if err != nil {
				return err
			}

			result, trace, err := components.Analyzer.Run(cmd.Context(), client)
			if err != nil {
				return err
			}
			if withTrace {
				return writeJSON(cmd.OutOrStdout(), struct {
					Result *domain.AnalysisResult `json:"result"`
					Trace  *domain.AnalysisTrace  `json:"trace"`
				}{result, trace})
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&client.FirstName, "first-name", "", "client first name (required)")
	cmd.Flags().StringVar(&client.LastName, "last-name", "", "client last name (required)")
	cmd.Flags().StringVar(&client.MiddleName, "middle-name", "", "client middle name")
	cmd.Flags().StringVar(&client.Suffix, "suffix", "", "name suffix, e.g. Jr.")
	cmd.Flags().BoolVar(&withTrace, "trace", false, "include intermediate scores and the feature vector")

	return cmd
}

func recommendCmd(opts *rootOptions) *cobra.Command {
	var input domain.FeatureInput

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run the tool classifier on an explicit feature vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := input.Validate(); err != nil {
				return err
			}

			manager, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			bundle, err := setup.LoadModel(*manager.GetModelConfig())
			if err != nil {
				return err
			}

			tools, err := service.NewModelRecommender(bundle).Recommend(input.Vector())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				Features         domain.FeatureInput `json:"features"`
				RecommendedTools []string            `json:"recommended_tools"`
			}{input, tools})
		},
	}

	cmd.Flags().Float64Var(&input.TotalPHQ9Score, "phq9-total", 0, "PHQ-9 total score")
	cmd.Flags().Float64Var(&input.PrimaryImpressionPHQ9, "phq9-code", 0, "PHQ-9 band code (0-4)")
	cmd.Flags().Float64Var(&input.TotalBAIScore, "bai-total", 0, "BAI total score")
	cmd.Flags().Float64Var(&input.PrimaryImpressionBAI, "bai-code", 0, "BAI band code (0-2)")
	cmd.Flags().Float64Var(&input.AskSuicideRisk, "risk-code", 0, "ASQ code, 1 for acute")

	return cmd
}

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration, model artifacts and phrase libraries",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := opts.load(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if used := manager.ConfigFileUsed(); used != "" {
				fmt.Fprintf(out, "config: %s\n", used)
			} else {
				fmt.Fprintln(out, "config: defaults and environment only")
			}
			sources := manager.GetSourcesConfig()
			for _, source := range domain.PipelineOrder {
				fmt.Fprintf(out, "source %s: %s\n", source, sources.URLFor(source))
			}
			phrases := manager.GetNarrativeConfig()
			fmt.Fprintf(out, "phrases: %s, %s, %s\n", phrases.PHQ9Path, phrases.ASQPath, phrases.BAIPath)

			problems := setup.Check(manager.GetConfig())
			for _, p := range problems {
				fmt.Fprintf(out, "problem: %v\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) found", len(problems))
			}

			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
