package output

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders results as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(results []ScenarioResult) ([]byte, error) {
	return yaml.Marshal(results)
}
