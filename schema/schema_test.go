/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/keycodec"
	"github.com/dolsem/dynamodel/registry"
	"github.com/dolsem/dynamodel/schema"
)

func TestLoadPets(t *testing.T) {
	reg, err := schema.Load("testdata/pets.yaml")
	require.NoError(t, err)
	assert.Len(t, reg.Tables(), 2)
	assert.Len(t, reg.Models(), 4)

	pets, ok := reg.Table("Pets")
	require.True(t, ok)
	assert.Equal(t, []string{"PK", "SK"}, pets.MarkedColumns())
	ts, ok := pets.Timestamps()
	require.True(t, ok)
	assert.Equal(t, "createdAt", ts.CreatedAt)

	ledger, ok := reg.Table("Ledger")
	require.True(t, ok)
	assert.Equal(t, []string{"pk"}, ledger.MarkedColumns())
	_, ok = ledger.Timestamps()
	assert.False(t, ok)

	dog, ok := reg.Model("Dog")
	require.True(t, ok)
	color, _ := dog.Attribute("color")
	assert.True(t, color.Shared)
	nicknames, _ := dog.Attribute("nicknames")
	assert.Equal(t, registry.TypeList, nicknames.Type)
	assert.Equal(t, []registry.ValueType{registry.TypeString}, nicknames.Elements)
	name, _ := dog.Attribute("name")
	assert.Equal(t, registry.TypeString, name.Type)

	cat, _ := reg.Model("Cat")
	primary, ok := cat.KeySequence(registry.PrimaryRole)
	require.True(t, ok)
	assert.Equal(t, "name", primary.PropertyFor("n"))
	secondary, _ := cat.KeySequence(registry.SecondaryRole)
	assert.Equal(t, 2, secondary.Len())
}

func TestLoadedSchemaEncodes(t *testing.T) {
	reg, err := schema.Load("testdata/pets.yaml")
	require.NoError(t, err)
	dog, _ := reg.Model("Dog")
	codec := keycodec.New(0)

	values := map[string]any{"name": "Sparky", "owner": "Victor", "breed": "Bull Terrier"}
	pk, err := codec.Encode(dog, values, registry.PrimaryRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog:name{Sparky}"}, pk)

	sk, err := codec.Encode(dog, values, registry.SecondaryRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog:owner{Victor}breed{Bull Terrier}"}, sk)

	entry, _ := reg.Model("LedgerEntry")
	sort, err := codec.Encode(entry, map[string]any{"seq": 7, "settled": true}, "sort")
	require.NoError(t, err)
	assert.Equal(t, []string{"seq{7}s{true}"}, sort)
}

func TestTimestampColumns(t *testing.T) {
	reg, err := schema.Parse([]byte(`
tables:
  - name: T
    timestamps: {createdAt: created, updatedAt: touched}
`))
	require.NoError(t, err)
	table, _ := reg.Table("T")
	ts, ok := table.Timestamps()
	require.True(t, ok)
	assert.Equal(t, registry.Timestamps{CreatedAt: "created", UpdatedAt: "touched"}, ts)
}

func TestEmptyDocument(t *testing.T) {
	reg, err := schema.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, reg.Tables())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		definition bool
	}{
		{
			name: "UnknownField",
			doc:  "tables:\n  - name: T\n    partition: PK\n",
		},
		{
			name: "BadTimestamps",
			doc:  "tables:\n  - name: T\n    timestamps: [a, b]\n",
		},
		{
			name: "UnknownType",
			doc: `
tables: [{name: T}]
models:
  - name: M
    table: T
    attributes: [{name: id, type: uuid}]
    keys: {primary: [id]}
`,
			definition: true,
		},
		{
			name: "NumberListKey",
			doc: `
tables: [{name: T}]
models:
  - name: M
    table: T
    attributes: [{name: ids, list: [number]}]
    keys: {primary: [ids]}
`,
			definition: true,
		},
		{
			name: "UnknownTable",
			doc: `
models:
  - name: M
    table: Nowhere
    attributes: [{name: id}]
    keys: {primary: [id]}
`,
			definition: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.definition, errors.IsInvalidDefinition(err), err.Error())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := schema.Load("testdata/missing.yaml")
	assert.Error(t, err)
}
