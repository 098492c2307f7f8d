package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/jsonlingo/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsonlingo <input.jsonl>",
		Short: "Concurrent JSONL translator",
		Long: `jsonlingo translates the string values of line-delimited JSON records
through an LLM provider while keeping each record's structure intact:
nesting, key order and non-string values are preserved exactly.

All records are translated concurrently under one shared concurrency cap.

Examples:
  jsonlingo data.jsonl                        # Translate to French, 8 concurrent calls
  jsonlingo data.jsonl -t 16 -L Spanish       # Wider gate, Spanish output
  jsonlingo data.jsonl --limit 100            # Only the first 100 records
  jsonlingo --list-models                     # Show usable chat models`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.jsonlingo.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Output file (default translated/<input name>)")
	cmd.Flags().IntVarP(&flags.Tasks, "tasks", "t", flags.Tasks, "Maximum number of concurrent translation calls")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", flags.Limit, "Translate only the first N records (-1 for all)")
	cmd.Flags().StringVarP(&flags.Language, "language", "L", flags.Language, "Target language (name or BCP-47 tag, e.g. French or fr)")
	cmd.Flags().StringVar(&flags.CachePath, "cache", "", "Path to a sqlite translation cache (disabled when empty)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model identifier (provider default when empty)")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "Custom API base URL (OpenAI-compatible endpoints)")
	cmd.Flags().Float64Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Per-call timeout")
	cmd.Flags().IntVar(&flags.MaxRetries, "max-retries", flags.MaxRetries, "Retries per failed translation call")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || f.Name == "version" {
			return
		}
		viper.BindPFlag(f.Name, f)
	})
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// .env is optional; real environment variables win when both exist.
	godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".jsonlingo" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jsonlingo")
	}

	// Environment variables
	viper.SetEnvPrefix("JSONLINGO")
	viper.AutomaticEnv()

	// The bare names the original .env convention uses
	viper.BindEnv("model", "JSONLINGO_MODEL", "MODEL")
	viper.BindEnv("base-url", "JSONLINGO_BASE_URL", "BASE_URL")
	viper.BindEnv("temperature", "JSONLINGO_TEMPERATURE", "TEMPERATURE")
	viper.BindEnv("timeout", "JSONLINGO_TIMEOUT", "TIMEOUT")
	viper.BindEnv("max-retries", "JSONLINGO_MAX_RETRIES", "MAX_RETRIES")
	viper.BindEnv("language", "JSONLINGO_LANGUAGE", "LANGUAGE")
	viper.BindEnv("provider", "JSONLINGO_PROVIDER", "PROVIDER")

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// MergeConfig overrides flag defaults with viper values (config file or
// environment) for every flag the user did not set explicitly.
func MergeConfig(cmd *cobra.Command, flags *Flags) {
	set := func(name string, apply func()) {
		if !cmd.Flags().Changed(name) && viper.IsSet(name) {
			apply()
		}
	}

	set("tasks", func() { flags.Tasks = viper.GetInt("tasks") })
	set("limit", func() { flags.Limit = viper.GetInt("limit") })
	set("language", func() { flags.Language = viper.GetString("language") })
	set("cache", func() { flags.CachePath = viper.GetString("cache") })
	set("provider", func() { flags.Provider = viper.GetString("provider") })
	set("model", func() { flags.Model = viper.GetString("model") })
	set("base-url", func() { flags.BaseURL = viper.GetString("base-url") })
	set("temperature", func() { flags.Temperature = viper.GetFloat64("temperature") })
	set("timeout", func() { flags.Timeout = viper.GetDuration("timeout") })
	set("max-retries", func() { flags.MaxRetries = viper.GetInt("max-retries") })
	set("output", func() { flags.OutputFile = viper.GetString("output") })
}

// GetAPIKey retrieves the provider API key from environment or config
func GetAPIKey(provider string) string {
	if provider == "gemini" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	if key := os.Getenv("API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("api-key")
}
