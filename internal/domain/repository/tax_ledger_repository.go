package repository

import (
	"context"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
)

// TaxLedgerRepository razão fiscal por transação.
// Deve aceitar lotes de pelo menos 500 transações por chamada.
type TaxLedgerRepository interface {
	// ListByTransactions devolve as linhas de imposto das transações pedidas.
	// Transações sem imposto apurado simplesmente não aparecem no resultado.
	ListByTransactions(ctx context.Context, transactionIDs []string) ([]entity.TaxLine, error)
}
