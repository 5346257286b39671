/*
Package registry manages model registration and key layout for dynamodel.

The registry system enables:
  - Polymorphic entity storage in a single DynamoDB table
  - Model resolution from the tag embedded in marked key columns
  - Composite key layouts through ordered (label, property) sequences

Tables:
A table declares its key roles (physical key columns) and optional timestamp
columns. By default a table has a "primary" role stored in PK and a
"secondary" role stored in SK, both prefixed with the model tag:

	b := registry.NewBuilder()
	b.AddTable(registry.TableDefinition{Name: "Pets"})

Models:
A model declares its attributes in order and the key sequence of each role:

	b.AddModel(registry.ModelDefinition{
	    Name:  "Dog",
	    Table: "Pets",
	    Attributes: []registry.Attribute{
	        registry.String("name"),
	        registry.String("owner"),
	        registry.String("breed"),
	        registry.Number("yearsOld"),
	    },
	    Keys: []registry.KeyDefinition{
	        registry.Key(registry.PrimaryRole, registry.Part("name", "name")),
	        registry.Key(registry.SecondaryRole, registry.Part("owner", "owner"), registry.Part("breed", "breed")),
	    },
	})
	reg, err := b.Build()

Build verifies every definition and returns an immutable Registry. It is
populated once during startup and is safe for concurrent reads afterwards.
*/
package registry
