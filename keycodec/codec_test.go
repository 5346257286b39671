/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keycodec_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/keycodec"
	"github.com/dolsem/dynamodel/registry"
	"github.com/dolsem/dynamodel/testmodels"
)

func pets(t *testing.T) (*registry.Registry, *registry.Table) {
	t.Helper()
	reg, err := testmodels.Pets().Build()
	require.NoError(t, err)
	table, ok := reg.Table(testmodels.PetsTable)
	require.True(t, ok)
	return reg, table
}

func model(t *testing.T, reg *registry.Registry, name string) *registry.Model {
	t.Helper()
	m, ok := reg.Model(name)
	require.True(t, ok, "model %s", name)
	return m
}

func TestEncodeDogScenario(t *testing.T) {
	reg, _ := pets(t)
	dog := model(t, reg, testmodels.DogModel)
	codec := keycodec.New(0)

	values := map[string]any{"name": "Sparky", "owner": "Victor", "breed": "Bull Terrier"}

	pk, err := codec.Encode(dog, values, registry.PrimaryRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog:name{Sparky}"}, pk)

	sk, err := codec.Encode(dog, values, registry.SecondaryRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog:owner{Victor}breed{Bull Terrier}"}, sk)

	got, err := codec.Decode(pk[0], registry.PrimaryRole, dog)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Sparky"}, got)

	got, err = codec.Decode(sk[0], registry.SecondaryRole, dog)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"owner": "Victor", "breed": "Bull Terrier"}, got)
}

func TestRoundTrip(t *testing.T) {
	reg, _ := pets(t)
	dog := model(t, reg, testmodels.DogModel)
	codec := keycodec.New(0)

	tests := []struct {
		name   string
		values map[string]any
	}{
		{"Plain", map[string]any{"owner": "Ann", "breed": "Pug"}},
		{"Braces", map[string]any{"owner": "{weird}", "breed": "a}b{c"}},
		{"Backslashes", map[string]any{"owner": `C:\pets\`, "breed": `\{`}},
		{"Colon", map[string]any{"owner": "x:y", "breed": "dog:name{z}"}},
		{"Empty", map[string]any{"owner": "", "breed": ""}},
		{"Unicode", map[string]any{"owner": "Zoë", "breed": "柴犬"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := codec.Encode(dog, tt.values, registry.SecondaryRole)
			require.NoError(t, err)
			require.Len(t, keys, 1)

			got, err := codec.Decode(keys[0], registry.SecondaryRole, dog)
			require.NoError(t, err)
			assert.Equal(t, tt.values, got)
		})
	}
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, `a\{b\}c\\d`, keycodec.Escape(`a{b}c\d`))
	assert.Equal(t, `a{b}c\d`, keycodec.Unescape(`a\{b\}c\\d`))
	assert.Equal(t, `keep\n`, keycodec.Unescape(`keep\n`))
	assert.Equal(t, "plain", keycodec.Escape("plain"))
}

func TestEncodeFanOut(t *testing.T) {
	reg, _ := pets(t)
	cat := model(t, reg, testmodels.CatModel)
	born := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)

	keys, err := keycodec.New(0).Encode(cat, map[string]any{
		"tags":     []string{"black", "fluffy", "old"},
		"birthday": born,
	}, registry.SecondaryRole)
	require.NoError(t, err)

	ms := "1583064000000"
	assert.Equal(t, []string{
		"cat:tags{black}born{" + ms + "}",
		"cat:tags{fluffy}born{" + ms + "}",
		"cat:tags{old}born{" + ms + "}",
	}, keys)

	// the list property is not read back from a single key
	got, err := keycodec.New(0).Decode(keys[1], registry.SecondaryRole, cat)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"birthday": born}, got)
}

func TestEncodeFanOutLimit(t *testing.T) {
	reg, _ := pets(t)
	cat := model(t, reg, testmodels.CatModel)

	tags := make([]any, 4)
	for i := range tags {
		tags[i] = strings.Repeat("t", i+1)
	}
	_, err := keycodec.New(3).Encode(cat, map[string]any{"tags": tags, "birthday": time.Now()}, registry.SecondaryRole)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFanOutLimit)

	keys, err := keycodec.New(4).Encode(cat, map[string]any{"tags": tags, "birthday": time.Now()}, registry.SecondaryRole)
	require.NoError(t, err)
	assert.Len(t, keys, 4)
}

func TestEncodeEmptyListIsMissing(t *testing.T) {
	reg, _ := pets(t)
	cat := model(t, reg, testmodels.CatModel)

	_, err := keycodec.New(0).Encode(cat, map[string]any{"tags": []string{}, "birthday": time.Now()}, registry.SecondaryRole)
	assert.True(t, errors.IsMissingKeyProperty(err))
}

func TestEncodeMissingProperty(t *testing.T) {
	reg, _ := pets(t)
	dog := model(t, reg, testmodels.DogModel)

	_, err := keycodec.New(0).Encode(dog, map[string]any{"owner": "Victor"}, registry.SecondaryRole)
	require.Error(t, err)
	assert.True(t, errors.IsMissingKeyProperty(err))

	var missing *errors.MissingKeyPropertyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "breed", missing.Property)
	assert.Equal(t, "Dog", missing.Model)
	assert.Contains(t, err.Error(), `"breed"`)
	assert.Contains(t, err.Error(), "owner:Victor")

	_, err = keycodec.New(0).Encode(dog, map[string]any{"name": nil}, registry.PrimaryRole)
	assert.True(t, errors.IsMissingKeyProperty(err))
}

func TestEncodeStringPointer(t *testing.T) {
	reg, _ := pets(t)
	dog := model(t, reg, testmodels.DogModel)
	codec := keycodec.New(0)

	name := "Sparky"
	keys, err := codec.Encode(dog, map[string]any{"name": &name}, registry.PrimaryRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog:name{Sparky}"}, keys)

	_, err = codec.Encode(dog, map[string]any{"name": (*string)(nil)}, registry.PrimaryRole)
	assert.True(t, errors.IsMissingKeyProperty(err))
}

func TestEncodeNilListElement(t *testing.T) {
	reg, _ := pets(t)
	cat := model(t, reg, testmodels.CatModel)

	black := "black"
	_, err := keycodec.New(0).Encode(cat,
		map[string]any{"tags": []*string{&black, nil}, "birthday": time.Now()}, registry.SecondaryRole)
	assert.True(t, errors.IsMissingKeyProperty(err))
}

func TestEncodeUnusedRole(t *testing.T) {
	reg, _ := pets(t)
	owner := model(t, reg, testmodels.OwnerModel)

	keys, err := keycodec.New(0).Encode(owner, map[string]any{"email": "a@b.c"}, registry.SecondaryRole)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, keys)
}

func TestCustomEncoder(t *testing.T) {
	reg, _ := pets(t)
	owner := model(t, reg, testmodels.OwnerModel)

	keys, err := keycodec.New(0).Encode(owner, map[string]any{"email": "Victor@Example.COM"}, registry.PrimaryRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"pet_owner:email{victor@example.com}"}, keys)
}

func TestTypeCoercion(t *testing.T) {
	reg, err := registry.NewBuilder().
		AddTable(registry.TableDefinition{Name: "T"}).
		AddModel(registry.ModelDefinition{
			Name:  "Probe",
			Table: "T",
			Attributes: []registry.Attribute{
				registry.Date("at"),
				registry.Boolean("flag"),
				registry.Number("n"),
				registry.String("s").WithCodec(nil, func(raw string) (any, error) {
					return "decoded:" + raw, nil
				}),
			},
			Keys: []registry.KeyDefinition{
				registry.Key(registry.PrimaryRole,
					registry.Part("", "at"), registry.Part("", "flag"),
					registry.Part("", "n"), registry.Part("", "s")),
			},
		}).Build()
	require.NoError(t, err)
	probe := model(t, reg, "Probe")
	codec := keycodec.New(0)

	at := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	roundTrip := func(t *testing.T, values map[string]any) map[string]any {
		t.Helper()
		keys, err := codec.Encode(probe, values, registry.PrimaryRole)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		got, err := codec.Decode(keys[0], registry.PrimaryRole, probe)
		require.NoError(t, err)
		return got
	}

	t.Run("DateMillisecondPrecision", func(t *testing.T) {
		got := roundTrip(t, map[string]any{"at": at, "flag": true, "n": 1, "s": "x"})
		assert.True(t, at.Truncate(time.Millisecond).Equal(got["at"].(time.Time)))
	})

	t.Run("StrfmtDateTime", func(t *testing.T) {
		got := roundTrip(t, map[string]any{"at": strfmt.DateTime(at), "flag": true, "n": 1, "s": "x"})
		assert.True(t, at.Truncate(time.Millisecond).Equal(got["at"].(time.Time)))
	})

	t.Run("BooleanFalse", func(t *testing.T) {
		got := roundTrip(t, map[string]any{"at": at, "flag": false, "n": 1, "s": "x"})
		assert.Equal(t, false, got["flag"])
	})

	t.Run("AnythingElseIsTrue", func(t *testing.T) {
		for _, v := range []any{true, "False", "no", 0} {
			got := roundTrip(t, map[string]any{"at": at, "flag": v, "n": 1, "s": "x"})
			assert.Equal(t, true, got["flag"], "value %v", v)
		}
	})

	t.Run("Numbers", func(t *testing.T) {
		got := roundTrip(t, map[string]any{"at": at, "flag": true, "n": 42, "s": "x"})
		assert.Equal(t, int64(42), got["n"])

		got = roundTrip(t, map[string]any{"at": at, "flag": true, "n": -2.5, "s": "x"})
		assert.Equal(t, -2.5, got["n"])
	})

	t.Run("LargeUnsigned", func(t *testing.T) {
		big := uint64(math.MaxInt64) + 2
		got := roundTrip(t, map[string]any{"at": at, "flag": true, "n": big, "s": "x"})
		assert.Equal(t, big, got["n"])
	})

	t.Run("Pointers", func(t *testing.T) {
		dt := strfmt.DateTime(at)
		flag, n, str := false, 7, "p"
		byPointer, err := codec.Encode(probe, map[string]any{"at": &dt, "flag": &flag, "n": &n, "s": &str}, registry.PrimaryRole)
		require.NoError(t, err)
		byValue, err := codec.Encode(probe, map[string]any{"at": at, "flag": false, "n": 7, "s": "p"}, registry.PrimaryRole)
		require.NoError(t, err)
		assert.Equal(t, byValue, byPointer)

		got := roundTrip(t, map[string]any{"at": &at, "flag": true, "n": 1, "s": "x"})
		assert.True(t, at.Truncate(time.Millisecond).Equal(got["at"].(time.Time)))
	})

	t.Run("NilPointers", func(t *testing.T) {
		for name, values := range map[string]map[string]any{
			"Date":   {"at": (*time.Time)(nil), "flag": true, "n": 1, "s": "x"},
			"String": {"at": at, "flag": true, "n": 1, "s": (*string)(nil)},
			"Number": {"at": at, "flag": true, "n": (*int)(nil), "s": "x"},
		} {
			_, err := codec.Encode(probe, values, registry.PrimaryRole)
			assert.True(t, errors.IsMissingKeyProperty(err), "%s: %v", name, err)
		}
	})

	t.Run("CustomDecoder", func(t *testing.T) {
		got := roundTrip(t, map[string]any{"at": at, "flag": true, "n": 1, "s": "x{y}"})
		assert.Equal(t, "decoded:x{y}", got["s"])
	})

	t.Run("RenderedForm", func(t *testing.T) {
		keys, err := codec.Encode(probe, map[string]any{"at": at, "flag": false, "n": 3.25, "s": "v"}, registry.PrimaryRole)
		require.NoError(t, err)
		assert.Equal(t, []string{"probe:at{1714979289123}flag{false}n{3.25}s{v}"}, keys)
	})
}

func TestDecodeTagMismatch(t *testing.T) {
	reg, _ := pets(t)
	dog := model(t, reg, testmodels.DogModel)

	_, err := keycodec.New(0).Decode("cat:name{Tom}", registry.PrimaryRole, dog)
	require.Error(t, err)
	assert.True(t, errors.IsModelTagMismatch(err))
	assert.False(t, errors.IsUnknownModelTag(err))

	// an untagged key is accepted against a known model
	got, err := keycodec.New(0).Decode("name{Rex}", registry.PrimaryRole, dog)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Rex"}, got)
}

func TestDecodeTable(t *testing.T) {
	reg, table := pets(t)
	codec := keycodec.New(0)

	t.Run("ResolvesOwningModel", func(t *testing.T) {
		for _, name := range []string{testmodels.DogModel, testmodels.CatModel, testmodels.OwnerModel} {
			m := model(t, reg, name)
			seq, _ := m.KeySequence(registry.PrimaryRole)
			values := map[string]any{}
			for _, p := range seq.Parts() {
				values[p.Property] = "same"
			}
			keys, err := codec.Encode(m, values, registry.PrimaryRole)
			require.NoError(t, err)

			_, resolved, err := codec.DecodeTable(keys[0], "PK", table)
			require.NoError(t, err)
			assert.Equal(t, name, resolved.Name())
		}
	})

	t.Run("DistinctPrefixes", func(t *testing.T) {
		dogKey, err := codec.Encode(model(t, reg, testmodels.DogModel), map[string]any{"name": "x"}, registry.PrimaryRole)
		require.NoError(t, err)
		catKey, err := codec.Encode(model(t, reg, testmodels.CatModel), map[string]any{"name": "x"}, registry.PrimaryRole)
		require.NoError(t, err)
		assert.NotEqual(t, dogKey[0], catKey[0])
		assert.True(t, strings.HasPrefix(dogKey[0], "dog:"))
		assert.True(t, strings.HasPrefix(catKey[0], "cat:"))
	})

	t.Run("UnknownTag", func(t *testing.T) {
		_, _, err := codec.DecodeTable("horse:name{Ed}", "PK", table)
		assert.True(t, errors.IsUnknownModelTag(err))
		assert.False(t, errors.IsModelTagMismatch(err))
	})

	t.Run("MissingTag", func(t *testing.T) {
		_, _, err := codec.DecodeTable("name{Ed}", "PK", table)
		assert.True(t, errors.IsUnknownModelTag(err))
	})

	t.Run("NotAKeyColumn", func(t *testing.T) {
		_, _, err := codec.DecodeTable("dog:name{Ed}", "color", table)
		assert.True(t, errors.IsMalformedKey(err))
	})
}

func TestDecodeMalformed(t *testing.T) {
	reg, _ := pets(t)
	dog := model(t, reg, testmodels.DogModel)
	codec := keycodec.New(0)

	for _, key := range []string{
		"dog:name{Sparky",
		"dog:name{Sp{arky}",
		"dog:name}Sparky{",
		"dog:{Sparky}",
		"dog:name{Sparky}tail",
		`dog:name{Sparky\}`,
	} {
		t.Run(key, func(t *testing.T) {
			_, err := codec.Decode(key, registry.PrimaryRole, dog)
			require.Error(t, err)
			assert.True(t, errors.IsMalformedKey(err), "got %v", err)
		})
	}
}

func TestDecodeUnknownLabelFallsBackToProperty(t *testing.T) {
	reg, _ := pets(t)
	dog := model(t, reg, testmodels.DogModel)

	got, err := keycodec.New(0).Decode("dog:name{Rex}weight{12}", registry.PrimaryRole, dog)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Rex", "weight": int64(12)}, got)
}

func TestUntaggedRole(t *testing.T) {
	reg, err := testmodels.Ledger().Build()
	require.NoError(t, err)
	entry := model(t, reg, testmodels.EntryModel)
	codec := keycodec.New(0)

	keys, err := codec.Encode(entry, map[string]any{"seq": 7, "settled": false}, "sort")
	require.NoError(t, err)
	assert.Equal(t, []string{"seq{7}s{false}"}, keys)

	got, err := codec.Decode(keys[0], "sort", entry)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"seq": int64(7), "settled": false}, got)
}
