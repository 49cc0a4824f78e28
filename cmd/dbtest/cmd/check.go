package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/carlosnayan/dbtestkit/cli"
	"github.com/carlosnayan/dbtestkit/internal/config"
	"github.com/carlosnayan/dbtestkit/testdb"
)

var checkWatch bool

var checkCmd = &cli.Command{
	Name:  "check",
	Short: "Resolve, connect and ping the test database",
	Long: `Resolves the connection parameters, opens a connection and pings
it. With --watch, re-runs the check whenever the config file changes.`,
	Usage: "dbtest check [--config path] [--watch]",
	Flags: []*cli.Flag{
		{
			Name:  "watch",
			Short: "w",
			Usage: "Re-run the check on config file changes",
			Value: &checkWatch,
		},
	},
	Run: runCheck,
}

func runCheck(args []string) error {
	if !checkWatch {
		return checkOnce()
	}

	path := configFile
	if path == "" {
		path = config.Find()
	}
	if path == "" {
		return fmt.Errorf("--watch requires a %s file", config.ConfigFileName)
	}

	if err := checkOnce(); err != nil {
		fmt.Printf("%s %v\n", colorize(Red, "✘"), err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops a
	// watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	fmt.Printf("Watching %s for changes...\n", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := checkOnce(); err != nil {
				fmt.Printf("%s %v\n", colorize(Red, "✘"), err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func checkOnce() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := testdb.NewResolver(cfg)
	conn, err := r.Connection(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	start := time.Now()
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	fmt.Printf("%s Connected with driver %s (%v)\n",
		colorize(Green, "✔"), conn.Driver(), time.Since(start).Round(time.Millisecond))
	return nil
}
