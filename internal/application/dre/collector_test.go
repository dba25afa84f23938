package dre_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdre "github.com/gestaoviva/dre-api/internal/application/dre"
	"github.com/gestaoviva/dre-api/internal/domain/entity"
)

var (
	periodStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
)

func saleRow(txID string, gross, net, cost int64) entity.SalesRow {
	return entity.SalesRow{
		Operation:     entity.OperationSale,
		Quantity:      decimal.NewFromInt(1),
		UnitGross:     decimal.NewFromInt(gross),
		UnitNet:       decimal.NewFromInt(net),
		UnitCost:      decimal.NewFromInt(cost),
		Freight:       decimal.Zero,
		TransactionID: txID,
	}
}

func returnRow(txID string, gross, net, cost int64) entity.SalesRow {
	row := saleRow(txID, gross, net, cost)
	row.Operation = entity.OperationReturn
	return row
}

// ──────────────────────────────────────────────────────────────────────────────
// TestCollect_VendasComDevolucao é o cenário de referência do fold:
// duas vendas de (bruto=100, liquido=90, cmv=60) e uma devolução idêntica
// devem fechar em Gross=100, Net=90, CMV=60, Returns=90,
// ReportedGross=190 e Discounts=10.
// ──────────────────────────────────────────────────────────────────────────────

func TestCollect_VendasComDevolucao(t *testing.T) {
	repo := &fakeSalesRepo{rows: []entity.SalesRow{
		saleRow("T1", 100, 90, 60),
		saleRow("T2", 100, 90, 60),
		returnRow("T3", 100, 90, 60),
	}}
	collector := appdre.NewChannelCollector(repo)

	totals, txIDs, err := collector.Collect(context.Background(), varejoSpec(), periodStart, periodEnd)

	require.NoError(t, err)
	assert.True(t, totals.Gross.Equal(decimal.NewFromInt(100)), "Gross deve ser 100, veio %s", totals.Gross)
	assert.True(t, totals.Net.Equal(decimal.NewFromInt(90)), "Net deve ser 90, veio %s", totals.Net)
	assert.True(t, totals.CMV.Equal(decimal.NewFromInt(60)), "CMV deve ser 60, veio %s", totals.CMV)
	assert.True(t, totals.Returns.Equal(decimal.NewFromInt(90)), "Returns deve ser 90, veio %s", totals.Returns)
	assert.True(t, totals.ReportedGross().Equal(decimal.NewFromInt(190)), "ReportedGross deve ser 190")
	assert.True(t, totals.Discounts().Equal(decimal.NewFromInt(10)), "Discounts deve ser 10")

	// Devolução não entra no conjunto de transações para impostos.
	assert.Equal(t, []string{"T1", "T2"}, txIDs, "só transações de VENDA entram no conjunto")
}

// TestCollect_SoDevolucoes lei do sinal: com só devoluções, os acumuladores
// ficam não-positivos e Returns acumula a magnitude líquida devolvida.
func TestCollect_SoDevolucoes(t *testing.T) {
	repo := &fakeSalesRepo{rows: []entity.SalesRow{
		returnRow("T1", 100, 90, 60),
		returnRow("T2", 50, 45, 30),
	}}
	collector := appdre.NewChannelCollector(repo)

	totals, txIDs, err := collector.Collect(context.Background(), varejoSpec(), periodStart, periodEnd)

	require.NoError(t, err)
	assert.True(t, totals.Gross.LessThanOrEqual(decimal.Zero), "Gross deve ser <= 0")
	assert.True(t, totals.Net.LessThanOrEqual(decimal.Zero), "Net deve ser <= 0")
	assert.True(t, totals.CMV.LessThanOrEqual(decimal.Zero), "CMV deve ser <= 0")
	assert.True(t, totals.Returns.Equal(decimal.NewFromInt(135)), "Returns deve somar |liquido| = 135")
	assert.Empty(t, txIDs, "devoluções não geram transações para impostos")
}

// TestCollect_FeedVazio período sem vendas devolve acumulador zerado, não erro.
func TestCollect_FeedVazio(t *testing.T) {
	collector := appdre.NewChannelCollector(&fakeSalesRepo{})

	totals, txIDs, err := collector.Collect(context.Background(), varejoSpec(), periodStart, periodEnd)

	require.NoError(t, err)
	assert.True(t, totals.Gross.IsZero())
	assert.True(t, totals.Net.IsZero())
	assert.True(t, totals.CMV.IsZero())
	assert.True(t, totals.Returns.IsZero())
	assert.Empty(t, txIDs)
}

// TestCollect_LinhaZeroNaoDescartada linhas de quantidade zero viram no-ops,
// mas a transação ainda entra no conjunto (pode ter imposto apurado).
func TestCollect_LinhaZeroNaoDescartada(t *testing.T) {
	zero := saleRow("T9", 100, 90, 60)
	zero.Quantity = decimal.Zero
	repo := &fakeSalesRepo{rows: []entity.SalesRow{zero}}
	collector := appdre.NewChannelCollector(repo)

	totals, txIDs, err := collector.Collect(context.Background(), varejoSpec(), periodStart, periodEnd)

	require.NoError(t, err)
	assert.True(t, totals.Gross.IsZero(), "linha de quantidade zero não move o acumulador")
	assert.Equal(t, []string{"T9"}, txIDs)
}

// TestCollect_FreteEntraNoBrutoELiquido o frete rateado soma no valor bruto e
// líquido da linha, mas não no CMV.
func TestCollect_FreteEntraNoBrutoELiquido(t *testing.T) {
	row := saleRow("T1", 100, 90, 60)
	row.Freight = decimal.NewFromInt(10)
	collector := appdre.NewChannelCollector(&fakeSalesRepo{rows: []entity.SalesRow{row}})

	totals, _, err := collector.Collect(context.Background(), varejoSpec(), periodStart, periodEnd)

	require.NoError(t, err)
	assert.True(t, totals.Gross.Equal(decimal.NewFromInt(110)), "bruto = 100×1 + 10 de frete")
	assert.True(t, totals.Net.Equal(decimal.NewFromInt(100)), "liquido = 90×1 + 10 de frete")
	assert.True(t, totals.CMV.Equal(decimal.NewFromInt(60)), "frete não compõe CMV")
}

// TestCollect_TransacoesDeduplicadas a mesma nota com várias linhas entra uma
// vez só no conjunto de transações.
func TestCollect_TransacoesDeduplicadas(t *testing.T) {
	repo := &fakeSalesRepo{rows: []entity.SalesRow{
		saleRow("T1", 100, 90, 60),
		saleRow("T1", 50, 45, 30),
		saleRow("T2", 10, 9, 6),
	}}
	collector := appdre.NewChannelCollector(repo)

	_, txIDs, err := collector.Collect(context.Background(), varejoSpec(), periodStart, periodEnd)

	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, txIDs, "transações repetidas entram uma vez, na ordem de chegada")
}

// TestCollect_ErroDoFeedPropaga falha do feed é fatal e nomeia o canal.
func TestCollect_ErroDoFeedPropaga(t *testing.T) {
	repo := &fakeSalesRepo{err: errors.New("timeout")}
	collector := appdre.NewChannelCollector(repo)

	_, _, err := collector.Collect(context.Background(), varejoSpec(), periodStart, periodEnd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "VAREJO", "o erro deve nomear o canal que falhou")
}

// ── helper ────────────────────────────────────────────────────────────────────

func varejoSpec() appdre.ChannelSpec {
	return appdre.ChannelSpec{
		Channel:   entity.ChannelVarejo,
		Companies: []string{"01"},
	}
}
