package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ConfigFileName is the configuration file searched for upward from the
// working directory.
const ConfigFileName = "dbtest.conf"

// Map is the ambient flat configuration map the resolver consumes. Keys use
// the db_* / tmpdb_* namespaces; values are plain strings. A key is present
// only if it was explicitly configured.
type Map map[string]string

// Load builds the ambient configuration map. It loads a .env file if one is
// found (walking up from the working directory), reads the TOML config file,
// expands environment references in values and overlays process environment
// variables from the DB_* and TMPDB_* namespaces.
//
// A missing config file is not an error: resolution then falls back to the
// embedded in-memory database unless the environment supplies db_driver.
func Load(configPath string) (Map, error) {
	loadDotEnv()

	m := Map{}

	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}

		var raw map[string]interface{}
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}

		for key, value := range raw {
			m[key] = expandString(stringify(value))
		}
	}

	m.overlayEnviron(os.Environ())

	return m, nil
}

// Has reports whether the key was explicitly configured.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// overlayEnviron copies DB_* and TMPDB_* environment entries over the file
// values, lowercasing the name. EXPECT_DB_DRIVER is intentionally not part
// of the map; it is an assertion, not a connection parameter.
func (m Map) overlayEnviron(environ []string) {
	for _, entry := range environ {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name, value := parts[0], parts[1]
		if strings.HasPrefix(name, "DB_") || strings.HasPrefix(name, "TMPDB_") {
			m[strings.ToLower(name)] = value
		}
	}
}

// loadDotEnv loads a .env file found walking up from the working directory.
// Errors are ignored; the file is optional.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	dir := wd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			_ = godotenv.Load()
			return
		}
		dir = parent
	}
}

// Find returns the path of the config file that Load would use, or "" when
// none exists. The dbtest check --watch command needs the concrete path.
func Find() string {
	return findConfigFile()
}

// findConfigFile searches for dbtest.conf upward from the working directory.
// Returns "" when no config file exists.
func findConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := wd
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// stringify renders a decoded TOML value as the flat string the map carries.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// expandString expands environment references in a value.
// Supports: ${VAR}, $VAR, env("VAR") and env('VAR')
func expandString(s string) string {
	for {
		var start int
		var endQuote string

		if idx := strings.Index(s, `env("`); idx != -1 {
			start = idx
			endQuote = `")`
		} else if idx := strings.Index(s, `env('`); idx != -1 {
			start = idx
			endQuote = `')`
		} else {
			break
		}

		end := strings.Index(s[start+5:], endQuote)
		if end == -1 {
			break
		}
		end += start + 5

		varName := s[start+5 : end]
		value := os.Getenv(varName)
		s = s[:start] + value + s[end+2:]
	}

	return os.ExpandEnv(s)
}
