package data

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Columns of the mappings table.
const (
	MappingsTableName = "url_mappings"

	columnID        = "id"
	columnAlias     = "alias"
	columnFullURL   = "full_url"
	columnShortURL  = "short_url"
	columnCreatedAt = "created_at"
)

var (
	// MappingsColumns holds the columns for the "url_mappings" table.
	MappingsColumns = []*schema.Column{
		{Name: columnID, Type: field.TypeInt64, Increment: true},
		{Name: columnAlias, Type: field.TypeString, Unique: true, Size: 64},
		{Name: columnFullURL, Type: field.TypeString, Size: 2048},
		{Name: columnShortURL, Type: field.TypeString, Size: 2048},
		{Name: columnCreatedAt, Type: field.TypeTime},
	}
	// MappingsTable holds the schema information for the "url_mappings" table.
	MappingsTable = &schema.Table{
		Name:       MappingsTableName,
		Columns:    MappingsColumns,
		PrimaryKey: []*schema.Column{MappingsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "mapping_created_at",
				Unique:  false,
				Columns: []*schema.Column{MappingsColumns[4]},
			},
		},
	}
)

// mappingColumns is the projection used by every mapping query.
var mappingColumns = []string{columnAlias, columnFullURL, columnShortURL, columnCreatedAt}
