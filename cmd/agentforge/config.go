package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aaxonlabs/agentforge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify agentforge configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/agentforge/config.yaml
Project-specific overrides can be placed in .agentforge.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("anthropic.api_key: %s\n", config.MaskAPIKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("bedrock.enabled: %t\n", cfg.Bedrock.Enabled)
	fmt.Printf("bedrock.region: %s\n", cfg.Bedrock.Region)
	fmt.Printf("bedrock.profile: %s\n", cfg.Bedrock.Profile)
	fmt.Printf("defaults.agent_name: %s\n", cfg.Defaults.AgentName)
	fmt.Printf("storage.db_path: %s\n", cfg.Storage.DBPath)
	fmt.Printf("storage.purge_after_days: %d\n", cfg.Storage.PurgeAfterDays)
	fmt.Printf("debug.log_path: %s\n", cfg.Debug.LogPath)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		return config.MaskAPIKey(cfg.Anthropic.APIKey), nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "bedrock.enabled":
		return strconv.FormatBool(cfg.Bedrock.Enabled), nil
	case "bedrock.region":
		return cfg.Bedrock.Region, nil
	case "bedrock.profile":
		return cfg.Bedrock.Profile, nil
	case "defaults.agent_name":
		return cfg.Defaults.AgentName, nil
	case "storage.db_path":
		return cfg.Storage.DBPath, nil
	case "storage.purge_after_days":
		return strconv.Itoa(cfg.Storage.PurgeAfterDays), nil
	case "debug.log_path":
		return cfg.Debug.LogPath, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "bedrock.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for bedrock.enabled: %w", err)
		}
		cfg.Bedrock.Enabled = b
	case "bedrock.region":
		cfg.Bedrock.Region = value
	case "bedrock.profile":
		cfg.Bedrock.Profile = value
	case "defaults.agent_name":
		cfg.Defaults.AgentName = value
	case "storage.db_path":
		cfg.Storage.DBPath = value
	case "storage.purge_after_days":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for purge_after_days: %w", err)
		}
		cfg.Storage.PurgeAfterDays = n
	case "debug.log_path":
		cfg.Debug.LogPath = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
