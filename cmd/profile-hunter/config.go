// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/profile-hunter/internal/secrets"
	"github.com/pdiddy/profile-hunter/pkg/types"
)

// bindFlags binds the named flags of cmd to viper keys. It runs from the
// command's PreRunE so flags shared by several subcommands bind only for
// the command being executed.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag --%s", flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// planFlags are the flags that shape the query plan.
var planFlags = map[string]string{
	"query":      "query",
	"preset":     "coverage.preset",
	"terms-file": "coverage.terms_file",
}

func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "issue this query verbatim instead of expanding the organization")
	cmd.Flags().String("preset", "us", "built-in coverage term list: us or es")
	cmd.Flags().String("terms-file", "", "YAML file with the coverage terms (a list, or a map with a terms key)")
}

// loadConfig assembles the harvest configuration from flags, environment,
// config file and the secrets directory.
func loadConfig() (types.HarvestConfig, error) {
	var cfg types.HarvestConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	if path := viper.GetString("coverage.terms_file"); path != "" {
		terms, err := loadTermsFile(path)
		if err != nil {
			return cfg, err
		}
		cfg.Coverage.Terms = terms
	}

	creds, err := secrets.Resolve(viper.GetString("secrets_dir"), secrets.Credentials{
		APIKey:   strings.TrimSpace(cfg.Search.APIKey),
		EngineID: strings.TrimSpace(cfg.Search.EngineID),
	})
	if err != nil {
		return cfg, err
	}
	cfg.Search.APIKey, cfg.Search.EngineID = creds.APIKey, creds.EngineID

	return cfg, nil
}

// termsFile is the map form of a terms file.
type termsFile struct {
	Terms []string `yaml:"terms"`
}

// loadTermsFile reads coverage terms from a YAML file holding either a
// plain list or a map with a terms key.
func loadTermsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading terms file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing terms file %s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("terms file %s is empty", path)
	}

	var terms []string
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		err = node.Content[0].Decode(&terms)
	case yaml.MappingNode:
		var tf termsFile
		err = node.Content[0].Decode(&tf)
		terms = tf.Terms
	default:
		return nil, fmt.Errorf("terms file %s: expected a list or a map with a terms key", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing terms file %s: %w", path, err)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("terms file %s has no terms", path)
	}
	return terms, nil
}
