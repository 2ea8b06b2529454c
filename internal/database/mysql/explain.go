package mysql

import (
	"context"
	"fmt"

	"github.com/strataorm/strata/internal/database/common"
	"github.com/strataorm/strata/pkg/adapter"
)

// Explain runs MySQL's EXPLAIN over the query and renders the vendor's
// 12-column plan as an aligned text table. NULL cells render as the
// literal text NULL.
func (c *Connection) Explain(ctx context.Context, q adapter.Query) (string, error) {
	if !c.IsConnected() {
		return "", adapter.ErrConnectionClosed
	}

	rows, err := c.db.QueryContext(ctx, "EXPLAIN "+q.SQL(), q.Args()...)
	if err != nil {
		return "", fmt.Errorf("failed to explain query: %w", err)
	}

	columns, cells, err := common.CollectNullStrings(rows)
	if err != nil {
		return "", err
	}

	result := adapter.ExplainResult{Columns: columns, Rows: cells}
	return result.Format(), nil
}
