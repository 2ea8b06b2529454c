package postgres

import (
	"github.com/strataorm/strata/pkg/adapter"
)

func init() {
	// Register PostgreSQL adapter with the global registry
	adapter.Register(NewAdapter())
}
