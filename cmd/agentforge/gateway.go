package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/aaxonlabs/agentforge/internal/api"
	"github.com/aaxonlabs/agentforge/internal/config"
)

// newGateway builds the text-generation client from the loaded config.
func newGateway(cfg *config.Config) (*api.Client, error) {
	apiKey, err := config.GetAPIKey(cfg)
	if err != nil && !cfg.Bedrock.Enabled {
		return nil, fmt.Errorf("no API key configured: set ANTHROPIC_API_KEY or run 'agentforge config anthropic.api_key <key>'")
	}

	client, err := api.NewClient(api.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        apiKey,
		UseAWSBedrock: cfg.Bedrock.Enabled,
		AWSRegion:     cfg.Bedrock.Region,
		AWSProfile:    cfg.Bedrock.Profile,
	})
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}
	return client, nil
}
