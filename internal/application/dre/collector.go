// Package dre implementa o pipeline de montagem da DRE: coleta por canal,
// resolução de impostos em lotes, cálculo de deduções e resultados,
// classificação do contas a pagar e montagem final da demonstração.
package dre

import (
	"context"
	"fmt"
	"time"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

// ChannelSpec escopo de um canal: empresas e, para o Multimarcas,
// o código de classificação que o separa do Varejo. Vem da configuração.
type ChannelSpec struct {
	Channel        entity.Channel
	Companies      []string
	Classification string
}

// ChannelCollector busca e agrega as linhas de venda de um canal (§ fold):
//
//	VENDA:     Gross += bruto, Net += liquido, CMV += cmv
//	DEVOLUCAO: Gross -= |bruto|, Net -= |liquido|, CMV -= |cmv|, Returns += |liquido|
//
// Nenhuma linha é descartada; linhas de quantidade ou valor zero viram no-ops.
type ChannelCollector struct {
	salesRepo repository.SalesRepository
}

// NewChannelCollector constrói o coletor.
func NewChannelCollector(salesRepo repository.SalesRepository) *ChannelCollector {
	return &ChannelCollector{salesRepo: salesRepo}
}

// Collect busca todas as linhas do canal no período e as dobra no acumulador.
// Devolve também o conjunto deduplicado (em ordem de primeira ocorrência) dos
// identificadores de transação das linhas de VENDA — devoluções ficam fora
// porque imposto só é consultado para saídas.
//
// Feed vazio devolve acumulador zerado, não erro; falha do feed propaga.
func (c *ChannelCollector) Collect(
	ctx context.Context,
	spec ChannelSpec,
	start, end time.Time,
) (entity.ChannelTotals, []string, error) {
	rows, err := c.salesRepo.ListPeriod(ctx, repository.SalesQuery{
		Start:          start,
		End:            end,
		Companies:      spec.Companies,
		Classification: spec.Classification,
	})
	if err != nil {
		return entity.ChannelTotals{}, nil, fmt.Errorf("coletor do canal %s: %w", spec.Channel, err)
	}

	totals := entity.ZeroChannelTotals()
	seen := make(map[string]struct{})
	var txIDs []string

	for _, row := range rows {
		bruto := row.GrossValue()
		liquido := row.NetValue()
		cmv := row.CostValue()

		switch row.Operation {
		case entity.OperationReturn:
			totals.Gross = totals.Gross.Sub(bruto.Abs())
			totals.Net = totals.Net.Sub(liquido.Abs())
			totals.CMV = totals.CMV.Sub(cmv.Abs())
			totals.Returns = totals.Returns.Add(liquido.Abs())
		default:
			// VENDA e qualquer tipo futuro de saída somam direto.
			totals.Gross = totals.Gross.Add(bruto)
			totals.Net = totals.Net.Add(liquido)
			totals.CMV = totals.CMV.Add(cmv)
			if row.TransactionID != "" {
				if _, ok := seen[row.TransactionID]; !ok {
					seen[row.TransactionID] = struct{}{}
					txIDs = append(txIDs, row.TransactionID)
				}
			}
		}
	}

	return totals, txIDs, nil
}
