package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/carlosnayan/dbtestkit/cli"
	"github.com/carlosnayan/dbtestkit/testdb"
)

var resetTimeout int

var resetCmd = &cli.Command{
	Name:  "reset",
	Short: "Destructively reset the configured test database",
	Long: `Drops and recreates the configured test database (or drops every
object in it when the backend has no server-level CREATE/DROP DATABASE).
The schema is NOT recreated; calling tests rebuild it lazily.`,
	Usage: "dbtest reset [--config path] [--timeout seconds]",
	Flags: []*cli.Flag{
		{
			Name:  "timeout",
			Short: "t",
			Usage: "Timeout in seconds (default: 30)",
			Value: &resetTimeout,
		},
	},
	Run: runReset,
}

func runReset(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.Has("db_driver") {
		fmt.Println("No db_driver configured; the fallback database is in-memory and needs no reset.")
		return nil
	}

	timeout := 30 * time.Second
	if resetTimeout > 0 {
		timeout = time.Duration(resetTimeout) * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// A fresh resolver has not initialized yet, so this performs the reset.
	r := testdb.NewResolver(cfg)
	p, err := r.MainParams(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s Reset database %s (driver %s)\n", colorize(Green, "✔"), p.DBName, p.Driver)
	return nil
}
