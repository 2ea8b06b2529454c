package mysql

import (
	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// typeTranslations is the fixed mapping from logical type tags to MySQL
// type names. A tag missing here is unsupported by the dialect; lookups
// fail rather than guess, since DDL correctness depends on the mapping.
var typeTranslations = map[dialect.TypeTag]string{
	dialect.TypeBool:      "bool",
	dialect.TypeInt:       "int",
	dialect.TypeBigInt:    "bigint",
	dialect.TypeFloat:     "float",
	dialect.TypeDecimal:   "decimal",
	dialect.TypeString:    "varchar",
	dialect.TypeText:      "text",
	dialect.TypeBinary:    "varbinary",
	dialect.TypeBlob:      "blob",
	dialect.TypeJSON:      "json",
	dialect.TypeUUID:      "char",
	dialect.TypeDate:      "date",
	dialect.TypeTime:      "time",
	dialect.TypeTimestamp: "datetime",
	dialect.TypeEnum:      "enum",
}

// defaultSizes supplies the length used in DDL for types that require an
// explicit one when none is given.
var defaultSizes = map[dialect.TypeTag]int{
	dialect.TypeString: 254,
	dialect.TypeUUID:   36,
	dialect.TypeBinary: 255,
}

// TypeTranslator implements adapter.TypeTranslator for the MySQL family.
type TypeTranslator struct{}

// TranslateType returns the MySQL type name for the given tag.
func (t *TypeTranslator) TranslateType(tag dialect.TypeTag) (string, error) {
	name, ok := typeTranslations[tag]
	if !ok {
		return "", adapter.NewUnknownTypeAliasError(dialect.MySQL, tag)
	}
	return name, nil
}

// DefaultSize returns the default DDL length for the given tag, if any.
func (t *TypeTranslator) DefaultSize(tag dialect.TypeTag) (int, bool) {
	size, ok := defaultSizes[tag]
	return size, ok
}
