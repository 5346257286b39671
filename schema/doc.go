/*
Package schema reads table and model definitions from YAML files and builds
a registry.Registry from them.

Schema Format:

	tables:
	  - name: Pets
	    timestamps: true        # or {createdAt: created, updatedAt: updated}
	    keys:                   # optional, defaults to PK/SK, both tagged
	      - role: primary
	        column: PK
	      - role: secondary
	        column: SK
	        tagged: true

	models:
	  - name: Dog
	    table: Pets
	    attributes:
	      - name: name          # type defaults to string
	      - name: birthday
	        type: date
	      - name: nicknames
	        list: [string]
	      - name: color
	        shared: true
	    keys:
	      primary: [name]
	      secondary:
	        - owner
	        - {label: b, property: breed}

A key part is either a property name, used as its own label, or a mapping
with an explicit label. Custom key codecs cannot be declared in a file;
models that need one are registered in Go with registry.Attribute.WithCodec.
*/
package schema
