package config

import (
	"fmt"
	"os"
	"strings"
)

// FallbackDriver is the embedded database used when no db_driver key is
// configured.
const FallbackDriver = "sqlite3"

// ConnectionParams is the explicit, typed form of a resolved parameter set.
// Fields are sparse: the zero value means the corresponding key was not
// configured. No defaults are injected except in fallback mode.
type ConnectionParams struct {
	Driver     string
	User       string
	Password   string
	Host       string
	DBName     string
	Port       string
	Server     string
	SSLKey     string
	SSLCert    string
	SSLCA      string
	SSLCAPath  string
	SSLCipher  string
	UnixSocket string

	// Memory and Path describe the embedded fallback database.
	Memory bool
	Path   string

	// DriverOptions carries db_driver_option_<name> entries keyed by <name>.
	DriverOptions map[string]string

	// Fallback records whether the params came from the fallback constant
	// set rather than explicit db_* configuration.
	Fallback bool
}

// knownKeys maps configuration key suffixes onto ConnectionParams fields.
var knownKeys = []string{
	"driver",
	"user",
	"password",
	"host",
	"dbname",
	"port",
	"server",
	"ssl_key",
	"ssl_cert",
	"ssl_ca",
	"ssl_capath",
	"ssl_cipher",
	"unix_socket",
}

// MainParams resolves the main connection parameters from the ambient map.
// Exactly one of the specified or fallback sets is returned: the fallback is
// chosen iff no db_driver key is present. When a fallback file path is
// configured, any pre-existing file at that path is deleted before returning.
func MainParams(m Map) (*ConnectionParams, error) {
	if !m.Has("db_driver") {
		p := &ConnectionParams{
			Driver:   FallbackDriver,
			Memory:   true,
			Fallback: true,
		}
		if path, ok := m["db_path"]; ok {
			p.Path = path
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to remove stale fallback database %s: %w", path, err)
			}
		}
		return p, nil
	}

	return fromPrefix(m, "db_"), nil
}

// TmpParams resolves the temporary/administrative connection parameters. If
// a tmpdb_driver key exists the tmpdb_* namespace is mapped; otherwise the
// db_* namespace is mapped with the database name removed, so the connection
// targets the server without selecting a database.
func TmpParams(m Map) *ConnectionParams {
	if m.Has("tmpdb_driver") {
		return fromPrefix(m, "tmpdb_")
	}

	p := fromPrefix(m, "db_")
	p.DBName = ""
	return p
}

// Subscribers returns the configured event subscriber names from the
// comma-separated db_event_subscribers entry.
func Subscribers(m Map) []string {
	raw, ok := m["db_event_subscribers"]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var names []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// fromPrefix copies the known keys of one namespace into a typed parameter
// set, collecting <prefix>driver_option_<name> entries into DriverOptions.
func fromPrefix(m Map, prefix string) *ConnectionParams {
	p := &ConnectionParams{}

	for _, key := range knownKeys {
		value, ok := m[prefix+key]
		if !ok {
			continue
		}
		switch key {
		case "driver":
			p.Driver = value
		case "user":
			p.User = value
		case "password":
			p.Password = value
		case "host":
			p.Host = value
		case "dbname":
			p.DBName = value
		case "port":
			p.Port = value
		case "server":
			p.Server = value
		case "ssl_key":
			p.SSLKey = value
		case "ssl_cert":
			p.SSLCert = value
		case "ssl_ca":
			p.SSLCA = value
		case "ssl_capath":
			p.SSLCAPath = value
		case "ssl_cipher":
			p.SSLCipher = value
		case "unix_socket":
			p.UnixSocket = value
		}
	}

	optionPrefix := prefix + "driver_option_"
	for key, value := range m {
		if strings.HasPrefix(key, optionPrefix) {
			name := key[len(optionPrefix):]
			if name == "" {
				continue
			}
			if p.DriverOptions == nil {
				p.DriverOptions = make(map[string]string)
			}
			p.DriverOptions[name] = value
		}
	}

	return p
}

// Masked returns a copy with the password hidden, for diagnostic printing.
func (p *ConnectionParams) Masked() *ConnectionParams {
	masked := *p
	if masked.Password != "" {
		masked.Password = "***"
	}
	if masked.DriverOptions != nil {
		masked.DriverOptions = make(map[string]string, len(p.DriverOptions))
		for k, v := range p.DriverOptions {
			masked.DriverOptions[k] = v
		}
	}
	return &masked
}
