package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/carlosnayan/dbtestkit/cli"
	"github.com/carlosnayan/dbtestkit/internal/config"
)

var resolveCmd = &cli.Command{
	Name:  "resolve",
	Short: "Print the resolved connection parameters",
	Long: `Resolves the main and administrative connection parameters from
dbtest.conf, .env and the DB_*/TMPDB_* environment, without touching any
database. Passwords are masked.`,
	Usage: "dbtest resolve [--config path]",
	Run:   runResolve,
}

func runResolve(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	main, err := config.MainParams(cfg)
	if err != nil {
		return err
	}

	provenance := "specified"
	if main.Fallback {
		provenance = "fallback"
	}
	fmt.Printf("Main connection (%s):\n", provenance)
	printParams(os.Stdout, main.Masked())

	if !main.Fallback {
		fmt.Println()
		fmt.Println("Temporary/administrative connection:")
		printParams(os.Stdout, config.TmpParams(cfg).Masked())
	}

	return nil
}

// printParams writes the set fields of a parameter set, one per line.
func printParams(w io.Writer, p *config.ConnectionParams) {
	fields := []struct {
		name  string
		value string
	}{
		{"driver", p.Driver},
		{"user", p.User},
		{"password", p.Password},
		{"host", p.Host},
		{"dbname", p.DBName},
		{"port", p.Port},
		{"server", p.Server},
		{"ssl_key", p.SSLKey},
		{"ssl_cert", p.SSLCert},
		{"ssl_ca", p.SSLCA},
		{"ssl_capath", p.SSLCAPath},
		{"ssl_cipher", p.SSLCipher},
		{"unix_socket", p.UnixSocket},
		{"path", p.Path},
	}

	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(w, "  %-12s %s\n", f.name, f.value)
		}
	}
	if p.Memory {
		fmt.Fprintf(w, "  %-12s true\n", "memory")
	}

	if len(p.DriverOptions) > 0 {
		names := make([]string, 0, len(p.DriverOptions))
		for name := range p.DriverOptions {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(w, "  driver options:")
		for _, name := range names {
			fmt.Fprintf(w, "    %-10s %s\n", name, p.DriverOptions[name])
		}
	}
}
