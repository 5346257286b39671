/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/spf13/cobra"

	"github.com/dolsem/dynamodel/registry"
)

// EncodeResult is the structured output of the encode command.
type EncodeResult struct {
	Model string              `json:"model" yaml:"model"`
	Keys  map[string][]string `json:"keys" yaml:"keys"`
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	var model, role string

	cmd := &cobra.Command{
		Use:   "encode --model <name> [--role <role>] <property=value>...",
		Short: "Encode property values into composite keys",
		Long: `Encode property values into the composite keys of a model.

Values are parsed by the attribute's declared type: numbers, booleans,
dates (RFC 3339 or epoch milliseconds) and comma-separated lists.
Without --role every key role the model uses is encoded.`,
		Example: `  dynamodel encode -s pets.yaml --model Dog name=Sparky owner=Victor "breed=Bull Terrier"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(rootOpts, cmd, model, role, args)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model name")
	cmd.Flags().StringVarP(&role, "role", "r", "", "key role (default: all roles of the model)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runEncode(opts *RootOptions, cmd *cobra.Command, modelName, role string, args []string) error {
	e, err := opts.load(cmd)
	if err != nil {
		return err
	}
	model, err := e.model(modelName)
	if err != nil {
		return err
	}
	values, err := parseAssignments(model, args)
	if err != nil {
		return err
	}

	roles := model.KeyRoles()
	if role != "" {
		roles = []string{role}
	}

	result := EncodeResult{Model: model.Name(), Keys: make(map[string][]string, len(roles))}
	for _, r := range roles {
		keys, err := e.codec.Encode(model, values, r)
		if err != nil {
			return err
		}
		result.Keys[r] = keys
	}

	if opts.Format != "text" {
		return write(cmd.OutOrStdout(), opts.Format, result)
	}
	for _, r := range roles {
		column := ""
		if kr, ok := model.Table().Role(r); ok {
			column = kr.Column
		}
		for _, k := range result.Keys[r] {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r, column, k)
		}
	}
	return nil
}

// parseAssignments turns property=value arguments into typed values.
func parseAssignments(model *registry.Model, args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		property, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q is not property=value", arg)
		}
		attr, ok := model.Attribute(property)
		if !ok {
			return nil, fmt.Errorf("model %s has no attribute %q", model.Name(), property)
		}
		v, err := parseValue(attr, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", property, err)
		}
		values[property] = v
	}
	return values, nil
}

func parseValue(attr *registry.Attribute, raw string) (any, error) {
	switch attr.Type {
	case registry.TypeNumber:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return f, nil
	case registry.TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return b, nil
	case registry.TypeDate:
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		dt, err := strfmt.ParseDateTime(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a date", raw)
		}
		return time.Time(dt).UTC(), nil
	case registry.TypeList:
		if raw == "" {
			return []string{}, nil
		}
		return strings.Split(raw, ","), nil
	}
	return raw, nil
}
