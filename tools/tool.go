// Package tools declares the named operations exposed to a
// tool-calling client and renders their results as text. It is glue
// around the orchestrator; the invocation transport lives elsewhere.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Tool defines the interface for all exposed operations.
type Tool interface {
	// Name returns the unique name of the tool (e.g. "search_flights")
	Name() string

	// Description returns a description of what the tool does and its arguments
	Description() string

	// Execute runs the tool with the given arguments and returns the
	// rendered text result.
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// stringArg extracts a required string argument, uppercased when
// upper is set.
func stringArg(args map[string]interface{}, key string, upper bool) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	v = strings.TrimSpace(v)
	if upper {
		v = strings.ToUpper(v)
	}
	return v, nil
}

// optionalStringArg extracts an optional string argument.
func optionalStringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

// intArg extracts an integer argument, tolerating the float64 that
// JSON decoding produces, with a default when absent.
func intArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
