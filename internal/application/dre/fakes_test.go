package dre_test

import (
	"context"
	"sync"
	"time"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

// ── fakes dos colaboradores externos ──────────────────────────────────────────

// fakeSalesRepo feed de vendas em memória; pode devolver linhas por
// classificação (para distinguir canais) ou um erro fixo.
type fakeSalesRepo struct {
	mu      sync.Mutex
	rows    []entity.SalesRow
	byClass map[string][]entity.SalesRow
	err     error
	queries []repository.SalesQuery
}

func (f *fakeSalesRepo) ListPeriod(_ context.Context, q repository.SalesQuery) ([]entity.SalesRow, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.byClass != nil {
		return f.byClass[q.Classification], nil
	}
	return f.rows, nil
}

// fakeTaxRepo razão fiscal em memória. Registra quantas chamadas recebeu e o
// máximo de chamadas simultâneas em voo (para verificar o limite de onda).
type fakeTaxRepo struct {
	mu          sync.Mutex
	calls       int
	batchSizes  []int
	inFlight    int
	maxInFlight int
	delay       time.Duration
	err         error
	linesFor    func(ids []string) []entity.TaxLine
}

func (f *fakeTaxRepo) ListByTransactions(_ context.Context, ids []string) ([]entity.TaxLine, error) {
	f.mu.Lock()
	f.calls++
	f.batchSizes = append(f.batchSizes, len(ids))
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.linesFor == nil {
		return nil, nil
	}
	return f.linesFor(ids), nil
}

// fakePayablesRepo razão de contas a pagar em memória.
type fakePayablesRepo struct {
	records []entity.PayableRecord
	err     error
}

func (f *fakePayablesRepo) ListEmitted(_ context.Context, _, _ time.Time, _ []string) ([]entity.PayableRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

// fakeLookupRepo cadastro em memória; erros simulam indisponibilidade.
type fakeLookupRepo struct {
	expenseNames  map[string]string
	supplierNames map[string]string
	err           error
}

func (f *fakeLookupRepo) ResolveExpenseNames(_ context.Context, _ []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.expenseNames, nil
}

func (f *fakeLookupRepo) ResolveSupplierNames(_ context.Context, _ []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.supplierNames, nil
}
