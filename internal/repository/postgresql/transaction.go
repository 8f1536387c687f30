package postgresql

import (
	"context"

	"github.com/okehris/hris-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx when one is running,
// otherwise the pool. Repositories call this so the same method works inside
// and outside RunInTx.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
