package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

var _ repository.PayablesRepository = (*PayablesRepo)(nil)

// PayablesRepo razão de contas a pagar no espelho do ERP.
// A view já faz o join com os rateios de centro de custo, então um mesmo
// título aparece em várias linhas — a deduplicação é responsabilidade do
// motor, não da consulta.
type PayablesRepo struct {
	pool *pgxpool.Pool
}

// NewPayablesRepository constrói o adaptador do contas a pagar.
func NewPayablesRepository(pool *pgxpool.Pool) *PayablesRepo {
	return &PayablesRepo{pool: pool}
}

// ListEmitted devolve as linhas emitidas no período para as empresas dadas.
func (r *PayablesRepo) ListEmitted(ctx context.Context, start, end time.Time, companies []string) ([]entity.PayableRecord, error) {
	const query = `
	SELECT
	    t.empresa,
	    t.fornecedor_codigo,
	    t.fornecedor_nome,
	    t.item_despesa_codigo,
	    t.item_despesa_descricao,
	    t.duplicata,
	    t.parcela,
	    t.data_emissao,
	    t.data_vencimento,
	    t.data_entrada,
	    COALESCE(t.data_baixa, 'epoch'::timestamp),
	    t.situacao,
	    t.previsao,
	    t.valor_face,
	    t.juros,
	    t.acrescimo,
	    t.desconto,
	    t.valor_pago,
	    rc.valor_rateio
	FROM titulos_pagar t
	JOIN titulos_pagar_rateios rc ON rc.titulo_id = t.id
	WHERE t.empresa = ANY($1)
	  AND t.data_emissao BETWEEN $2 AND $3
	ORDER BY t.data_emissao, t.fornecedor_codigo, t.duplicata, t.parcela`

	rows, err := r.pool.Query(ctx, query, companies, start, end)
	if err != nil {
		return nil, fmt.Errorf("titulos.ListEmitted: %w", err)
	}
	defer rows.Close()

	var result []entity.PayableRecord
	for rows.Next() {
		var rec entity.PayableRecord
		if err := rows.Scan(
			&rec.Company,
			&rec.SupplierCode,
			&rec.SupplierName,
			&rec.ItemCode,
			&rec.ItemName,
			&rec.DuplicateNo,
			&rec.InstallmentNo,
			&rec.EmissionDate,
			&rec.DueDate,
			&rec.EntryDate,
			&rec.SettlementDate,
			&rec.Situation,
			&rec.Forecast,
			&rec.FaceValue,
			&rec.Interest,
			&rec.Surcharge,
			&rec.Discount,
			&rec.Paid,
			&rec.Allocation,
		); err != nil {
			return nil, fmt.Errorf("titulos.ListEmitted scan: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
