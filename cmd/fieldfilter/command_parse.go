package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/oyamado/fieldfilter/filter"
	"github.com/oyamado/fieldfilter/tokenizer"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Filter string `arg:"" help:"Filter expression, e.g. '.resource{\"aws_instance\"}.ami'"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	fields, err := filter.Parse(cmd.Filter)
	if err != nil {
		return err
	}

	if ctx.Quiet {
		return nil
	}

	for i, field := range fields {
		parts := []string{fmt.Sprintf("name=%q", field.Name)}

		if len(field.Labels) > 0 {
			labels := make([]string, 0, len(field.Labels))
			for _, label := range field.Labels {
				labels = append(labels, fmt.Sprintf("%q", label))
			}
			parts = append(parts, "labels=["+strings.Join(labels, ", ")+"]")
		}

		if field.Index != nil {
			parts = append(parts, fmt.Sprintf("index=%d", *field.Index))
		}

		fmt.Printf("[%d] %s\n", i+1, strings.Join(parts, " "))
	}

	if ctx.Verbose {
		color.Green("%d segment(s)", len(fields))
	}

	return nil
}

// TokensCmd represents the tokens command
type TokensCmd struct {
	Filter string `arg:"" help:"Filter expression to tokenize"`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	tokens, err := tokenizer.Tokenize(cmd.Filter)
	if err != nil {
		return err
	}

	if ctx.Quiet {
		return nil
	}

	for _, token := range tokens {
		fmt.Printf("%3d:%-3d %-10s %q\n", token.Position.Line, token.Position.Column, token.Type, token.Value)
	}

	return nil
}
