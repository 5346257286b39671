package testmodels

import (
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/dolsem/dynamodel/registry"
)

// Table and model names of the fixtures.
const (
	PetsTable   = "Pets"
	LedgerTable = "Ledger"

	DogModel   = "Dog"
	CatModel   = "Cat"
	OwnerModel = "PetOwner"
	EntryModel = "LedgerEntry"
)

// Dog is the application struct of the Dog model.
type Dog struct {
	// Name of the dog.
	// Required: true
	Name string `dynamodel:"name"`

	Owner string `dynamodel:"owner"`
	Breed string `dynamodel:"breed"`

	// Format: date-time
	Birthday time.Time `dynamodel:"birthday"`

	Vaccinated bool     `dynamodel:"vaccinated"`
	Weight     float64  `dynamodel:"weight"`
	Nicknames  []string `dynamodel:"nicknames"`
	Color      string   `dynamodel:"color"`

	// Format: date-time
	CreatedAt *strfmt.DateTime `dynamodel:"createdAt"`
	UpdatedAt *strfmt.DateTime `dynamodel:"updatedAt"`
}

// Pets returns the builder definitions of the Pets table:
//
//	Dog       PK dog:name{..}            SK dog:owner{..}breed{..}
//	Cat       PK cat:n{..}               SK cat:tags{..}born{..} (fans out over tags)
//	PetOwner  PK pet_owner:email{..}     no SK
func Pets() *registry.Builder {
	return registry.NewBuilder().
		AddTable(registry.TableDefinition{
			Name:       PetsTable,
			Timestamps: registry.DefaultTimestamps(),
		}).
		AddModel(registry.ModelDefinition{
			Name:  DogModel,
			Table: PetsTable,
			Attributes: []registry.Attribute{
				registry.String("name"),
				registry.String("owner"),
				registry.String("breed"),
				registry.Date("birthday"),
				registry.Boolean("vaccinated"),
				registry.Number("weight"),
				registry.StringList("nicknames"),
				registry.String("color").AsShared(),
			},
			Keys: []registry.KeyDefinition{
				registry.Key(registry.PrimaryRole, registry.Part("name", "name")),
				registry.Key(registry.SecondaryRole, registry.Part("owner", "owner"), registry.Part("breed", "breed")),
			},
		}).
		AddModel(registry.ModelDefinition{
			Name:  CatModel,
			Table: PetsTable,
			Attributes: []registry.Attribute{
				registry.String("name"),
				registry.StringList("tags"),
				registry.Date("birthday"),
				registry.Boolean("indoor"),
				registry.Number("age"),
				registry.String("color").AsShared(),
			},
			Keys: []registry.KeyDefinition{
				registry.Key(registry.PrimaryRole, registry.Part("n", "name")),
				registry.Key(registry.SecondaryRole, registry.Part("", "tags"), registry.Part("born", "birthday")),
			},
		}).
		AddModel(registry.ModelDefinition{
			Name:  OwnerModel,
			Table: PetsTable,
			Attributes: []registry.Attribute{
				registry.String("email").WithCodec(lowerEmail, nil),
				registry.String("fullName"),
			},
			Keys: []registry.KeyDefinition{
				registry.Key(registry.PrimaryRole, registry.Part("email", "email")),
			},
		})
}

// Ledger returns the builder definitions of a table with an untagged sort role.
func Ledger() *registry.Builder {
	return registry.NewBuilder().
		AddTable(registry.TableDefinition{
			Name: LedgerTable,
			KeyRoles: []registry.KeyRole{
				{Name: registry.PrimaryRole, Column: "pk", IncludeModelTag: true},
				{Name: "sort", Column: "sk"},
			},
		}).
		AddModel(registry.ModelDefinition{
			Name:  EntryModel,
			Table: LedgerTable,
			Attributes: []registry.Attribute{
				registry.String("account"),
				registry.Number("seq"),
				registry.Number("amount"),
				registry.Boolean("settled"),
			},
			Keys: []registry.KeyDefinition{
				registry.Key(registry.PrimaryRole, registry.Part("acct", "account")),
				registry.Key("sort", registry.Part("seq", "seq"), registry.Part("s", "settled")),
			},
		})
}

// MustBuild builds a fixture registry, panicking on definition errors.
func MustBuild(b *registry.Builder) *registry.Registry {
	reg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return reg
}

func lowerEmail(v any) (any, error) {
	if s, ok := v.(string); ok {
		return strings.ToLower(s), nil
	}
	return v, nil
}
