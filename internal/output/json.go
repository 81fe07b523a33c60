package output

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter renders results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(results []ScenarioResult) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(results, "", "  ")
	}
	return json.Marshal(results)
}
