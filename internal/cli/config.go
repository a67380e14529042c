package cli

import (
	"fmt"
	"os"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/ibm"
	"gopkg.in/yaml.v3"
)

// fileConfig is the layout of a --config YAML file:
//
//	model: bayes
//	iterations: 20
//	ibm1:
//	  iterations: 10
//	bayes:
//	  alpha: 0.0001
//	  burn_in: 100
//	  samples: 50
//	  lag: 10
//	  seed: 7
type fileConfig struct {
	Model      string     `yaml:"model"`
	Iterations int        `yaml:"iterations"`
	Models     ibm.Config `yaml:",inline"`
}

// loadTrainConfig returns the default training config overlaid with the
// YAML file at path, if any.
func loadTrainConfig(path string) (*wordalign.TrainConfig, error) {
	cfg := wordalign.DefaultTrainConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{
		Model:  cfg.Model,
		Models: cfg.Models,
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Model = fc.Model
	cfg.Iterations = fc.Iterations
	cfg.Models = fc.Models
	return cfg, nil
}
