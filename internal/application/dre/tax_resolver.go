package dre

import (
	"context"
	"fmt"
	"math"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

const (
	// taxBatchSize transações por chamada ao razão fiscal.
	taxBatchSize = 500
	// taxMaxInFlight lotes em voo simultâneo dentro de uma onda. Limite fixo
	// para não sobrecarregar o razão fiscal; não é ajustado dinamicamente.
	taxMaxInFlight = 3
)

// ProgressFunc callback opcional de progresso (0–100). Só alimenta feedback
// de UI; não tem efeito sobre a corretude da resolução.
type ProgressFunc func(percent int)

// TaxResolver resolve ICMS/PIS/COFINS por transação em lotes de tamanho fixo,
// processados em ondas de até taxMaxInFlight lotes paralelos. A onda n+1 só
// começa depois que todos os fetches da onda n terminaram (barreira de onda).
type TaxResolver struct {
	taxRepo    repository.TaxLedgerRepository
	onProgress ProgressFunc
}

// NewTaxResolver constrói o resolvedor. onProgress pode ser nil.
func NewTaxResolver(taxRepo repository.TaxLedgerRepository, onProgress ProgressFunc) *TaxResolver {
	return &TaxResolver{taxRepo: taxRepo, onProgress: onProgress}
}

// Resolve busca e agrega os impostos das transações dadas.
//
// Política de falha: erro em QUALQUER lote aborta a resolução inteira do
// canal. Um total de impostos parcial subdeclararia a receita líquida em
// silêncio, então isso é falha dura para o chamador, não degradação.
func (r *TaxResolver) Resolve(ctx context.Context, transactionIDs []string) (entity.TaxResolution, error) {
	result := entity.TaxResolution{
		PerTransaction: make(map[string]entity.TaxTotals),
		Totals:         entity.ZeroTaxTotals(),
	}
	if len(transactionIDs) == 0 {
		return result, nil
	}

	batches := partition(transactionIDs, taxBatchSize)
	processed := 0

	type batchResult struct {
		lines []entity.TaxLine
		err   error
	}

	for start := 0; start < len(batches); start += taxMaxInFlight {
		if err := ctx.Err(); err != nil {
			return entity.TaxResolution{}, fmt.Errorf("resolução de impostos cancelada: %w", err)
		}

		end := start + taxMaxInFlight
		if end > len(batches) {
			end = len(batches)
		}
		wave := batches[start:end]

		ch := make(chan batchResult, len(wave))
		for _, batch := range wave {
			go func(ids []string) {
				lines, err := r.taxRepo.ListByTransactions(ctx, ids)
				ch <- batchResult{lines: lines, err: err}
			}(batch)
		}

		// Barreira: espera a onda inteira antes de decidir ou avançar.
		var waveErr error
		for range wave {
			res := <-ch
			if res.err != nil && waveErr == nil {
				waveErr = res.err
			}
			if res.err != nil {
				continue
			}
			for _, line := range res.lines {
				result.PerTransaction[line.TransactionID] = result.PerTransaction[line.TransactionID].AddLine(line)
				result.Totals = result.Totals.AddLine(line)
			}
		}
		if waveErr != nil {
			return entity.TaxResolution{}, fmt.Errorf("resolução de impostos: %w", waveErr)
		}

		processed += len(wave)
		r.reportProgress(processed, len(batches))
	}

	return result, nil
}

func (r *TaxResolver) reportProgress(processed, total int) {
	if r.onProgress == nil {
		return
	}
	percent := int(math.Round(float64(processed) / float64(total) * 100))
	if percent > 100 {
		percent = 100
	}
	r.onProgress(percent)
}

// partition fatia ids em lotes de no máximo size elementos, preservando a ordem.
func partition(ids []string, size int) [][]string {
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
