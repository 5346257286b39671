/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dolsem/dynamodel/storagemodels"
	"github.com/dolsem/dynamodel/translator"
)

// NewRowCommand creates the row command.
func NewRowCommand(rootOpts *RootOptions) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "row --table <name> [file]",
		Short: "Translate a JSON row into an entity",
		Long: `Translate a physical row, given as a JSON object, into the entity of
whichever model of the table owns it. The row is read from file, or from
stdin when file is omitted or "-".`,
		Example: `  echo '{"PK":"dog:name{Sparky}","dog:weight":21}' | dynamodel row -s pets.yaml --table Pets`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}
			t, err := e.table(table)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			row, err := readRow(in)
			if err != nil {
				return err
			}

			entity, err := translator.New(e.codec).FromTableRow(row, t)
			if err != nil {
				return err
			}
			if unmapped := entity.Unmapped(); len(unmapped) > 0 {
				e.logger.Warn("row columns match no attribute",
					"model", entity.Model().Name(), "columns", unmapped)
			}
			return printDecoded(rootOpts, cmd, DecodeResult{
				Model:    entity.Model().Name(),
				Values:   entity.Values(),
				Unmapped: entity.Unmapped(),
			})
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table name")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

// readRow decodes a JSON object, keeping integral numbers as int64.
func readRow(r io.Reader) (storagemodels.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("reading row: %w", err)
	}
	row := make(storagemodels.Row, len(raw))
	for k, v := range raw {
		row[k] = normalize(v)
	}
	return row, nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
