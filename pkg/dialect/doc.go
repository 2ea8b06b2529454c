// Package dialect provides a shared registry describing the SQL dialects
// supported by the Strata adapter layer. The rest of the codebase imports
// this package to make decisions based on uniform metadata (default ports,
// system databases, table-lock support) without dialect-specific branches.
//
// Minimal usage example:
//
//	import "github.com/strataorm/strata/pkg/dialect"
//
//	func canLock(name string) bool {
//	    id, ok := dialect.ParseID(name)
//	    if !ok {
//	        return false
//	    }
//	    return dialect.MustGet(id).SupportsTableLocks
//	}
//
// The package also defines the logical TypeTag vocabulary shared by every
// adapter's type-translation table, and a connection-URI parser used by the
// configuration layer.
//
// The package exposes constants for IDs (e.g., dialect.MySQL) and a
// registry `All` for advanced consumers.
package dialect
