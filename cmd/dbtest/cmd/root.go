package cmd

import (
	"github.com/carlosnayan/dbtestkit"
	"github.com/carlosnayan/dbtestkit/cli"
	"github.com/carlosnayan/dbtestkit/testdb"
)

var (
	configFile string
	verbose    bool
)

var app *cli.App

// Execute runs the CLI application
func Execute() error {
	app = cli.NewApp(
		"dbtest",
		dbtestkit.Version,
		"Test-database provisioning and connection checks",
	)

	app.AddGlobalFlag(&cli.Flag{
		Name:  "config",
		Short: "c",
		Usage: "Path to configuration file (default: dbtest.conf)",
		Value: &configFile,
	})
	app.AddGlobalFlag(&cli.Flag{
		Name:  "verbose",
		Short: "V",
		Usage: "Verbose mode (show detailed logs)",
		Value: &verbose,
	})

	app.AddCommand(resolveCmd)
	app.AddCommand(resetCmd)
	app.AddCommand(checkCmd)

	return app.Execute()
}

// loadConfig builds the ambient configuration map honoring --config
func loadConfig() (testdb.Config, error) {
	return testdb.LoadConfig(configFile)
}
