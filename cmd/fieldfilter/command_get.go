package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/oyamado/fieldfilter/filter"
	"github.com/oyamado/fieldfilter/navigate"
)

// ErrNoDocument is returned when neither --file nor the config name a document
var ErrNoDocument = errors.New("no document given: pass --file or set 'document' in the configuration")

// GetCmd represents the get command
type GetCmd struct {
	Filter string `arg:"" help:"Filter expression selecting a field"`
	File   string `help:"YAML document to read (default from configuration)" short:"f"`
	Format string `help:"Output format: yaml or raw (default from configuration)"`
}

// Run executes the get command
func (cmd *GetCmd) Run(ctx *Context) error {
	path := cmd.File
	if path == "" {
		path = ctx.Config.Document
	}
	if path == "" {
		return ErrNoDocument
	}

	format := cmd.Format
	if format == "" {
		format = ctx.Config.Output.Format
	}

	fields, err := filter.Parse(cmd.Filter)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse document %s: %w", path, err)
	}

	node, err := navigate.Find(&root, fields)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Selected %s from %s", cmd.Filter, path)
	}

	output, err := render(node, format)
	if err != nil {
		return err
	}

	fmt.Print(output)

	return nil
}

// render formats the selected node. "raw" prints scalar values bare and
// falls back to YAML for collections.
func render(node *yaml.Node, format string) (string, error) {
	if format == "raw" && node.Kind == yaml.ScalarNode {
		return node.Value + "\n", nil
	}

	out, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("failed to render selected node: %w", err)
	}

	if !strings.HasSuffix(string(out), "\n") {
		out = append(out, '\n')
	}

	return string(out), nil
}
