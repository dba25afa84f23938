package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

var _ repository.TaxLedgerRepository = (*TaxLedgerRepo)(nil)

// TaxLedgerRepo razão fiscal por transação no espelho do ERP.
type TaxLedgerRepo struct {
	pool *pgxpool.Pool
}

// NewTaxLedgerRepository constrói o adaptador do razão fiscal.
func NewTaxLedgerRepository(pool *pgxpool.Pool) *TaxLedgerRepo {
	return &TaxLedgerRepo{pool: pool}
}

// ListByTransactions devolve as linhas de imposto das transações pedidas.
// O chamador controla o tamanho do lote (o resolvedor envia até 500 por vez).
func (r *TaxLedgerRepo) ListByTransactions(ctx context.Context, transactionIDs []string) ([]entity.TaxLine, error) {
	const query = `
	SELECT transacao_id, codigo_imposto, valor
	FROM impostos_transacao
	WHERE transacao_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("impostos.ListByTransactions: %w", err)
	}
	defer rows.Close()

	var result []entity.TaxLine
	for rows.Next() {
		var line entity.TaxLine
		if err := rows.Scan(&line.TransactionID, &line.Code, &line.Amount); err != nil {
			return nil, fmt.Errorf("impostos.ListByTransactions scan: %w", err)
		}
		result = append(result, line)
	}
	return result, rows.Err()
}
