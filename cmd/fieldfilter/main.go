package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/oyamado/fieldfilter"
)

// Context represents the global context for commands
type Context struct {
	Config  *fieldfilter.Config
	Verbose bool
	Quiet   bool
}

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path" default:"fieldfilter.yaml"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`
	NoColor bool   `help:"Disable colored output"`

	Parse   ParseCmd   `cmd:"" help:"Parse a filter expression and show its fields"`
	Tokens  TokensCmd  `cmd:"" help:"Show the token stream of a filter expression"`
	Get     GetCmd     `cmd:"" help:"Apply a filter to a YAML document"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("fieldfilter v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	config, err := fieldfilter.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if CLI.NoColor || (config.Output.Color != nil && !*config.Output.Color) {
		color.NoColor = true
	}

	appCtx := &Context{
		Config:  config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err = ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
