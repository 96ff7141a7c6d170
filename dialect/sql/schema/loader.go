package schema

import (
	"fmt"

	"github.com/syssam/sqlkit/schema/coltype"

	"gopkg.in/yaml.v3"
)

// schemaFile is the YAML shape of a declarative schema definition.
type schemaFile struct {
	Tables []tableDef `yaml:"tables"`
}

type tableDef struct {
	Name        string        `yaml:"name"`
	Columns     []columnDef   `yaml:"columns"`
	PrimaryKey  []string      `yaml:"primary_key"`
	Indexes     []*Index      `yaml:"indexes"`
	ForeignKeys []*ForeignKey `yaml:"foreign_keys"`
}

type columnDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Size     int    `yaml:"size"`
	Nullable bool   `yaml:"nullable"`
	Unique   bool   `yaml:"unique"`
}

var typesByName = map[string]coltype.Type{
	coltype.TypeShortInt.String(): coltype.TypeShortInt,
	coltype.TypeLongInt.String():  coltype.TypeLongInt,
	coltype.TypeFloat.String():    coltype.TypeFloat,
	coltype.TypeDouble.String():   coltype.TypeDouble,
	coltype.TypeUUID.String():     coltype.TypeUUID,
	coltype.TypeDateTime.String(): coltype.TypeDateTime,
	coltype.TypeBlob.String():     coltype.TypeBlob,
	coltype.TypeBinary.String():   coltype.TypeBinary,
	coltype.TypeBool.String():     coltype.TypeBool,
	coltype.TypeText.String():     coltype.TypeText,
}

// UnmarshalTables parses a declarative YAML schema definition into
// logical tables, typically compared against an introspected schema
// with ValidateDiff.
func UnmarshalTables(data []byte) ([]*Table, error) {
	var f schemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sqlkit/schema: parse schema file: %w", err)
	}
	tables := make([]*Table, 0, len(f.Tables))
	for _, td := range f.Tables {
		if td.Name == "" {
			return nil, fmt.Errorf("sqlkit/schema: table without a name")
		}
		t := &Table{
			Name:        td.Name,
			PrimaryKey:  td.PrimaryKey,
			Indexes:     td.Indexes,
			ForeignKeys: td.ForeignKeys,
		}
		for _, idx := range t.Indexes {
			if idx.Table == "" {
				idx.Table = t.Name
			}
		}
		for _, fk := range t.ForeignKeys {
			if fk.Table == "" {
				fk.Table = t.Name
			}
		}
		for _, cd := range td.Columns {
			typ, ok := typesByName[cd.Type]
			if !ok {
				return nil, fmt.Errorf("sqlkit/schema: table %s: column %s: unknown type %q", td.Name, cd.Name, cd.Type)
			}
			t.Columns = append(t.Columns, &Column{
				Name:     cd.Name,
				Type:     coltype.ColumnType{Type: typ, Size: cd.Size, Stream: typ == coltype.TypeBlob},
				Nullable: cd.Nullable,
				Unique:   cd.Unique,
			})
		}
		tables = append(tables, t)
	}
	return tables, nil
}
