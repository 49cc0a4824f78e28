// Package cli is the small command framework behind the dbtest binary.
package cli

import (
	"fmt"
	"os"
)

// Command represents a CLI command
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
	Flags []*Flag
}

// Flag represents a command flag
type Flag struct {
	Name     string
	Short    string
	Usage    string
	Required bool
	Value    interface{} // *string, *bool, *int
}

// App represents the CLI application
type App struct {
	Name        string
	Version     string
	Description string
	Commands    []*Command
	GlobalFlags []*Flag
}

// NewApp creates a new CLI application
func NewApp(name, version, description string) *App {
	return &App{
		Name:        name,
		Version:     version,
		Description: description,
		Commands:    []*Command{},
		GlobalFlags: []*Flag{},
	}
}

// AddCommand adds a command to the app
func (a *App) AddCommand(cmd *Command) {
	a.Commands = append(a.Commands, cmd)
}

// AddGlobalFlag adds a global flag to the app
func (a *App) AddGlobalFlag(flag *Flag) {
	a.GlobalFlags = append(a.GlobalFlags, flag)
}

// Execute runs the CLI application against os.Args.
func (a *App) Execute() error {
	return a.ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the CLI application against the given arguments.
func (a *App) ExecuteArgs(args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return nil
	}

	if args[0] == "--version" || args[0] == "-v" {
		fmt.Printf("%s version %s\n", a.Name, a.Version)
		return nil
	}

	if args[0] == "--help" || args[0] == "-h" {
		a.printUsage()
		return nil
	}

	remainingArgs, err := parseFlags(args, a.GlobalFlags)
	if err != nil {
		return err
	}

	if len(remainingArgs) == 0 {
		a.printUsage()
		return nil
	}

	cmdName := remainingArgs[0]
	cmdArgs := remainingArgs[1:]

	var cmd *Command
	for _, c := range a.Commands {
		if c.Name == cmdName {
			cmd = c
			break
		}
	}

	if cmd == nil {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmdName)
		a.printUsage()
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if len(cmdArgs) > 0 && (cmdArgs[0] == "--help" || cmdArgs[0] == "-h") {
		cmd.PrintUsage()
		return nil
	}

	finalArgs, err := parseFlags(cmdArgs, cmd.Flags)
	if err != nil {
		return err
	}
	if cmd.Run == nil {
		return fmt.Errorf("command %s has no run function", cmdName)
	}
	return cmd.Run(finalArgs)
}

// parseFlags parses flags from arguments and returns the remaining
// positional arguments. A missing required flag is an error.
func parseFlags(args []string, flags []*Flag) ([]string, error) {
	parsed := make(map[string]bool)
	remaining := []string{}
	i := 0

	for i < len(args) {
		arg := args[i]

		if len(arg) > 1 && arg[0] == '-' {
			flagName := arg[1:]
			if len(arg) > 2 && arg[1] == '-' {
				flagName = arg[2:]
			}

			var flag *Flag
			for _, f := range flags {
				if f.Name == flagName || f.Short == flagName {
					flag = f
					break
				}
			}

			if flag != nil {
				_, isBool := flag.Value.(*bool)

				if isBool {
					setFlagValue(flag, "true")
					parsed[flag.Name] = true
					i++
				} else {
					if i+1 >= len(args) || (len(args[i+1]) > 0 && args[i+1][0] == '-') {
						return nil, fmt.Errorf("flag --%s needs a value", flag.Name)
					}
					setFlagValue(flag, args[i+1])
					parsed[flag.Name] = true
					i += 2
				}
			} else {
				// Unknown flag, treat as argument
				remaining = append(remaining, arg)
				i++
			}
		} else {
			remaining = append(remaining, arg)
			i++
		}
	}

	for _, flag := range flags {
		if flag.Required && !parsed[flag.Name] {
			return nil, fmt.Errorf("flag --%s is required", flag.Name)
		}
	}

	return remaining, nil
}

// setFlagValue sets the value of a flag
func setFlagValue(flag *Flag, value string) {
	switch v := flag.Value.(type) {
	case *string:
		*v = value
	case *bool:
		*v = value == "true" || value == "1"
	case *int:
		_, _ = fmt.Sscanf(value, "%d", v)
	}
}

// printUsage prints the usage information
func (a *App) printUsage() {
	fmt.Printf("%s - %s\n\n", a.Name, a.Description)
	fmt.Printf("Usage:\n  %s [command] [flags]\n\n", a.Name)

	if len(a.Commands) > 0 {
		fmt.Println("Commands:")
		for _, cmd := range a.Commands {
			fmt.Printf("  %-15s %s\n", cmd.Name, cmd.Short)
		}
		fmt.Println()
	}

	if len(a.GlobalFlags) > 0 {
		fmt.Println("Global Flags:")
		for _, flag := range a.GlobalFlags {
			short := ""
			if flag.Short != "" {
				short = fmt.Sprintf("-%s, ", flag.Short)
			}
			fmt.Printf("  %s--%s\t%s\n", short, flag.Name, flag.Usage)
		}
		fmt.Println()
	}

	fmt.Printf("Use '%s [command] --help' for more information about a command.\n", a.Name)
}

// PrintUsage prints usage for a specific command
func (cmd *Command) PrintUsage() {
	if cmd.Long != "" {
		fmt.Println(cmd.Long)
		fmt.Println()
	}

	if cmd.Usage != "" {
		fmt.Printf("Usage:\n  %s\n\n", cmd.Usage)
	} else {
		fmt.Printf("Usage:\n  %s\n\n", cmd.Name)
	}

	if len(cmd.Flags) > 0 {
		fmt.Println("Flags:")
		for _, flag := range cmd.Flags {
			short := ""
			if flag.Short != "" {
				short = fmt.Sprintf("-%s, ", flag.Short)
			}
			required := ""
			if flag.Required {
				required = " (required)"
			}
			fmt.Printf("  %s--%s\t%s%s\n", short, flag.Name, flag.Usage, required)
		}
		fmt.Println()
	}
}
