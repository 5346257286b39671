/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package translator rebuilds logical entities from physical rows and projects
entity values onto physical columns.

A row read at table scope is resolved through its marked key column: the model
tag in that key selects the model, whose remaining key columns are decoded and
merged. Plain columns are renamed back to properties (scoped columns lose their
"<tag>:" prefix) and timestamp columns are copied as stored.

	tr := translator.New(keycodec.New(0))
	entity, err := tr.FromTableRow(row, pets)
	if err != nil {
	    return err
	}
	var dog Dog
	err = entity.As(&dog)
*/
package translator
