package dialect

// TypeTag is a logical, dialect-independent column type identifier.
// The mapping layer above the adapters speaks only in type tags; each
// adapter owns a translation table from tags to vendor SQL type names.
// Not every dialect supports every tag.
type TypeTag string

const (
	TypeBool        TypeTag = "bool"
	TypeInt         TypeTag = "int"
	TypeBigInt      TypeTag = "bigint"
	TypeFloat       TypeTag = "float"
	TypeDecimal     TypeTag = "decimal"
	TypeString      TypeTag = "string"
	TypeText        TypeTag = "text"
	TypeBinary      TypeTag = "binary"
	TypeBlob        TypeTag = "blob"
	TypeJSON        TypeTag = "json"
	TypeUUID        TypeTag = "uuid"
	TypeDate        TypeTag = "date"
	TypeTime        TypeTag = "time"
	TypeTimestamp   TypeTag = "timestamp"
	TypeTimestampTZ TypeTag = "timestamptz"
	TypeEnum        TypeTag = "enum"
	TypeArray       TypeTag = "array"
)

// String returns the tag's literal form.
func (t TypeTag) String() string {
	return string(t)
}
