/*
Package dynamodel maps logical entity models onto a single physical key-value
table shared by many models.

Each model's key properties are encoded into composite key strings such as
"dog:name{Sparky}" (see package keycodec). A row read back from the table is
resolved to the model whose tag prefixes its marked key column and rebuilt
into an entity (see package translator).

A list-typed key property fans one logical write out into one row per
element. All rows of a write go to the store in a single transaction.

Basic Usage:

	reg, err := registry.NewBuilder().
		AddTable(registry.TableDefinition{Name: "Pets"}).
		AddModel(registry.ModelDefinition{
			Name:  "Dog",
			Table: "Pets",
			Attributes: []registry.Attribute{
				registry.String("name"),
				registry.String("owner"),
			},
			Keys: []registry.KeyDefinition{
				registry.Key(registry.PrimaryRole, registry.Part("name", "name")),
				registry.Key(registry.SecondaryRole, registry.Part("owner", "owner")),
			},
		}).
		Build()

	client := dynamodel.New(reg, dynamodel.WithLogger(logger))
	store, _ := ddb.NewFromConfig(ctx, cfg.AWS, "Pets", logger)
	client.Bind("Pets", store)

	dogs, _ := client.Model("Dog")
	dog, err := dogs.Create(ctx, map[string]any{"name": "Sparky", "owner": "Victor"})

Table-scope reads (Query, Stream) resolve every row to its own model, so a
single page may hold several models.
*/
package dynamodel
