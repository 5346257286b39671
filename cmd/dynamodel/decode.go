/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// DecodeResult is the structured output of the decode and row commands.
type DecodeResult struct {
	Model    string         `json:"model" yaml:"model"`
	Values   map[string]any `json:"values" yaml:"values"`
	Unmapped []string       `json:"unmapped,omitempty" yaml:"unmapped,omitempty"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	var table, column, model, role string

	cmd := &cobra.Command{
		Use:   "decode (--table <name> --column <col> | --model <name> --role <role>) <key>",
		Short: "Decode a composite key into typed values",
		Long: `Decode a composite key.

With --table and --column the model is resolved from the key's tag. With
--model and --role the key is decoded against that model and its tag, if
any, must match.`,
		Example: `  dynamodel decode -s pets.yaml --table Pets --column PK 'dog:name{Sparky}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}

			var result DecodeResult
			switch {
			case table != "" && column != "":
				t, err := e.table(table)
				if err != nil {
					return err
				}
				values, m, err := e.codec.DecodeTable(args[0], column, t)
				if err != nil {
					return err
				}
				result = DecodeResult{Model: m.Name(), Values: values}
			case model != "" && role != "":
				m, err := e.model(model)
				if err != nil {
					return err
				}
				values, err := e.codec.Decode(args[0], role, m)
				if err != nil {
					return err
				}
				result = DecodeResult{Model: m.Name(), Values: values}
			default:
				return fmt.Errorf("either --table and --column or --model and --role are required")
			}
			return printDecoded(rootOpts, cmd, result)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table name")
	cmd.Flags().StringVarP(&column, "column", "c", "", "key column holding the key")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model name")
	cmd.Flags().StringVarP(&role, "role", "r", "", "key role")

	return cmd
}

func printDecoded(opts *RootOptions, cmd *cobra.Command, result DecodeResult) error {
	if opts.Format != "text" {
		return write(cmd.OutOrStdout(), opts.Format, result)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "model\t%s\n", result.Model)
	props := make([]string, 0, len(result.Values))
	for p := range result.Values {
		props = append(props, p)
	}
	sort.Strings(props)
	for _, p := range props {
		fmt.Fprintf(out, "%s\t%v\n", p, result.Values[p])
	}
	for _, c := range result.Unmapped {
		fmt.Fprintf(out, "unmapped\t%s\n", c)
	}
	return nil
}
