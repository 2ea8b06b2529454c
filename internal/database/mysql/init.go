package mysql

import (
	"github.com/strataorm/strata/pkg/adapter"
)

func init() {
	// Register MySQL adapter with the global registry
	adapter.Register(NewAdapter())
}
