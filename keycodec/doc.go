/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package keycodec turns a model's key properties into encoded key strings and
back.

An encoded key has the form

	[tag ":"] label "{" value "}" label "{" value "}" ...

where tag is the model tag (present when the key role includes it) and every
value has '\', '{' and '}' escaped with a backslash. Dates are written as epoch
milliseconds and numbers as-is.

List-typed key properties fan out: a role with a list of n values encodes to n
keys, one physical row each. Decoding skips them.

	codec := keycodec.New(0)
	pks, err := codec.Encode(dog, map[string]any{"name": "Sparky"}, registry.PrimaryRole)
	// pks == []string{"dog:name{Sparky}"}

	values, model, err := codec.DecodeTable(pks[0], "PK", pets)
*/
package keycodec
