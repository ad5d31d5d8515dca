package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every gridview environment variable.
const EnvPrefix = "GRIDVIEW_"

// EnvLoader loads configuration from environment variables.
//
// Explicit mappings come first. Any other prefixed variable is converted
// by treating the first word as the section and the rest as a camelCase
// key: GRIDVIEW_TABLE_WINDOW_LENGTH becomes table.windowLength.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates an environment loader for prefix, which should
// include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// NewEnvLoaderFrom creates a loader that reads variables from environ
// instead of the process environment.
func NewEnvLoaderFrom(prefix string, environ func() []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = environ
	return l
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"GRIDVIEW_LOG_LEVEL":  "logging.level",
		"GRIDVIEW_LOG_FORMAT": "logging.format",
		"GRIDVIEW_WINDOW":     "table.windowLength",
		"GRIDVIEW_ALGORITHM":  "table.algorithm",
	}
}

// AddMapping adds a custom variable -> path mapping.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.mapping[envVar] = path
}

// Load reads the environment and returns a configuration map.
// Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		SetPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts GRIDVIEW_TABLE_WINDOW_LENGTH to table.windowLength.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	section := strings.ToLower(parts[0])
	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + setting
}

// parseValue converts a variable value to a bool, integer, float, JSON
// array or object, or leaves it as a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}
