package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo feed de vendas sobre o espelho de leitura do ERP.
// Uma linha por item de nota; devoluções vêm com tipo_operacao = DEVOLUCAO.
type SalesRepo struct {
	pool *pgxpool.Pool
}

// NewSalesRepository constrói o adaptador do feed de vendas.
func NewSalesRepository(pool *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{pool: pool}
}

// ListPeriod devolve as linhas de venda/devolução do período para as empresas
// do canal. A classificação do cliente, quando presente, separa o canal
// Multimarcas do Varejo (empresas compartilhadas).
func (r *SalesRepo) ListPeriod(ctx context.Context, q repository.SalesQuery) ([]entity.SalesRow, error) {
	const query = `
	SELECT
	    n.tipo_operacao,
	    i.quantidade,
	    i.preco_bruto,
	    i.preco_liquido,
	    i.custo_unitario,
	    i.frete_rateado,
	    n.transacao_id
	FROM notas_saida n
	JOIN notas_saida_itens i ON i.nota_id = n.id
	WHERE n.empresa = ANY($1)
	  AND n.data_emissao BETWEEN $2 AND $3
	  AND ($4 = '' OR n.classificacao_cliente = $4)
	ORDER BY n.data_emissao, n.transacao_id`

	rows, err := r.pool.Query(ctx, query, q.Companies, q.Start, q.End, q.Classification)
	if err != nil {
		return nil, fmt.Errorf("vendas.ListPeriod: %w", err)
	}
	defer rows.Close()

	var result []entity.SalesRow
	for rows.Next() {
		var row entity.SalesRow
		if err := rows.Scan(
			&row.Operation,
			&row.Quantity,
			&row.UnitGross,
			&row.UnitNet,
			&row.UnitCost,
			&row.Freight,
			&row.TransactionID,
		); err != nil {
			return nil, fmt.Errorf("vendas.ListPeriod scan: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
