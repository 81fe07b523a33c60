package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("extend_years", createExtendContribution)
	registry.Register("set_wage", createSetWage)
	registry.Register("set_index", createSetIndex)
	registry.Register("set_option", createSetOption)
	registry.Register("split_tracks", createSplitTracks)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_wage:wage=20000,from=2570"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func optionalInt(params map[string]string, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func createExtendContribution(params map[string]string) (ScenarioTransform, error) {
	yearsStr, err := requireParam("extend_years", params, "years")
	if err != nil {
		return nil, err
	}
	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &ExtendContribution{Years: years}, nil
}

func createSetWage(params map[string]string) (ScenarioTransform, error) {
	wageStr, err := requireParam("set_wage", params, "wage")
	if err != nil {
		return nil, err
	}
	wage, err := decimal.NewFromString(wageStr)
	if err != nil {
		return nil, fmt.Errorf("invalid wage value: %w", err)
	}
	from, err := optionalInt(params, "from")
	if err != nil {
		return nil, err
	}
	return &SetWage{Wage: wage, FromYear: from}, nil
}

func createSetIndex(params map[string]string) (ScenarioTransform, error) {
	indexStr, err := requireParam("set_index", params, "index")
	if err != nil {
		return nil, err
	}
	index, err := decimal.NewFromString(indexStr)
	if err != nil {
		return nil, fmt.Errorf("invalid index value: %w", err)
	}
	return &SetIndex{Index: index}, nil
}

func createSetOption(params map[string]string) (ScenarioTransform, error) {
	option, err := requireParam("set_option", params, "option")
	if err != nil {
		return nil, err
	}
	valueStr, err := requireParam("set_option", params, "value")
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return &SetOption{Option: option, Value: value}, nil
}

func createSplitTracks(params map[string]string) (ScenarioTransform, error) {
	monthsStr, err := requireParam("split_tracks", params, "months")
	if err != nil {
		return nil, err
	}
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}
	from, err := optionalInt(params, "from")
	if err != nil {
		return nil, err
	}
	return &SplitTracks{Months: months, FromYear: from}, nil
}
