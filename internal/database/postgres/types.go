package postgres

import (
	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// typeTranslations is the fixed mapping from logical type tags to
// PostgreSQL type names. Enum is deliberately absent: PostgreSQL enums
// are named types requiring their own DDL, which the mapping layer models
// separately. Lookups fail on a miss rather than guess.
var typeTranslations = map[dialect.TypeTag]string{
	dialect.TypeBool:        "boolean",
	dialect.TypeInt:         "integer",
	dialect.TypeBigInt:      "bigint",
	dialect.TypeFloat:       "double precision",
	dialect.TypeDecimal:     "numeric",
	dialect.TypeString:      "character varying",
	dialect.TypeText:        "text",
	dialect.TypeBinary:      "bytea",
	dialect.TypeBlob:        "bytea",
	dialect.TypeJSON:        "jsonb",
	dialect.TypeUUID:        "uuid",
	dialect.TypeDate:        "date",
	dialect.TypeTime:        "time",
	dialect.TypeTimestamp:   "timestamp",
	dialect.TypeTimestampTZ: "timestamptz",
}

// defaultSizes supplies the length used in DDL for types that require an
// explicit one when none is given.
var defaultSizes = map[dialect.TypeTag]int{
	dialect.TypeString: 255,
}

// TypeTranslator implements adapter.TypeTranslator for the PostgreSQL
// family.
type TypeTranslator struct{}

// TranslateType returns the PostgreSQL type name for the given tag.
func (t *TypeTranslator) TranslateType(tag dialect.TypeTag) (string, error) {
	name, ok := typeTranslations[tag]
	if !ok {
		return "", adapter.NewUnknownTypeAliasError(dialect.PostgreSQL, tag)
	}
	return name, nil
}

// DefaultSize returns the default DDL length for the given tag, if any.
func (t *TypeTranslator) DefaultSize(tag dialect.TypeTag) (int, bool) {
	size, ok := defaultSizes[tag]
	return size, ok
}
