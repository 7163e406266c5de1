package store

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultTableName is the table holding service component rows.
const DefaultTableName = "ServiceComponent"

// Config holds configuration for the Store.
type Config struct {
	// TableName is the DynamoDB table all requests target.
	// Default: "ServiceComponent"
	TableName string `yaml:"table_name" envconfig:"COMPONENTS_TABLE"`

	// Region selects the regional DynamoDB endpoint. Read once at construction.
	// Empty falls back to the SDK's default resolution chain.
	Region string `yaml:"region" envconfig:"AWS_REGION"`

	// Endpoint overrides the DynamoDB endpoint URL (e.g. DynamoDB Local).
	Endpoint string `yaml:"endpoint" envconfig:"DYNAMODB_ENDPOINT"`

	// ConsistentRead requests strongly consistent reads for List and Get.
	// Default: true
	ConsistentRead bool `yaml:"consistent_read" envconfig:"COMPONENTS_CONSISTENT_READ" default:"true"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TableName:      DefaultTableName,
		ConsistentRead: true,
	}
}

// ConfigFromEnvironment loads a Config from environment variables.
func ConfigFromEnvironment() (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	cfg.validate()
	return cfg, nil
}

// ConfigFromYaml loads a Config from a YAML file. Keys missing from the
// file keep their DefaultConfig values.
func ConfigFromYaml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config file: %w", err)
	}
	cfg.validate()
	return cfg, nil
}

// validate ensures config values are usable.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = DefaultTableName
	}
}
