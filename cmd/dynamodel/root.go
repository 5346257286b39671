/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dolsem/dynamodel/config"
	"github.com/dolsem/dynamodel/keycodec"
	"github.com/dolsem/dynamodel/registry"
	"github.com/dolsem/dynamodel/schema"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Schema  string
	EnvFile string
	Format  string // "text" | "json" | "yaml"
	Verbose bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command of the CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dynamodel",
		Short: "Inspect single-table composite keys",
		Long: `Encode model values into composite keys, decode keys and rows back
into typed values, using the tables and models of a YAML schema file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Schema, "schema", "s", "", "schema file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", "", "env file with DYNAMODEL_* settings (default .env)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging to stderr")

	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewRowCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// env is what a schema-bound command works with.
type env struct {
	registry *registry.Registry
	codec    *keycodec.Codec
	logger   *slog.Logger
}

func (o *RootOptions) load(cmd *cobra.Command) (*env, error) {
	if o.Schema == "" {
		return nil, fmt.Errorf("--schema is required")
	}

	var files []string
	if o.EnvFile != "" {
		files = append(files, o.EnvFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	reg, err := schema.Load(o.Schema)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	logger.Debug("schema loaded", "path", o.Schema,
		"tables", len(reg.Tables()), "models", len(reg.Models()), "maxFanOut", cfg.MaxFanOut)

	return &env{registry: reg, codec: keycodec.New(cfg.MaxFanOut), logger: logger}, nil
}

func (e *env) model(name string) (*registry.Model, error) {
	m, ok := e.registry.Model(name)
	if !ok {
		return nil, fmt.Errorf("model %q is not declared in the schema", name)
	}
	return m, nil
}

func (e *env) table(name string) (*registry.Table, error) {
	t, ok := e.registry.Table(name)
	if !ok {
		return nil, fmt.Errorf("table %q is not declared in the schema", name)
	}
	return t, nil
}

// write renders v in a structured format; text output is up to the caller.
func write(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
