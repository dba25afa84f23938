package entity

import "github.com/shopspring/decimal"

// Tipos de operação do feed de vendas.
const (
	OperationSale   = "VENDA"
	OperationReturn = "DEVOLUCAO"
)

// SalesRow representa uma linha do feed de vendas de um canal.
// Imutável: vem do ERP e nunca é persistida pelo motor de DRE.
type SalesRow struct {
	Operation     string          // VENDA ou DEVOLUCAO
	Quantity      decimal.Decimal // quantidade de itens da linha
	UnitGross     decimal.Decimal // preço bruto unitário (tabela)
	UnitNet       decimal.Decimal // preço líquido unitário (após descontos)
	UnitCost      decimal.Decimal // custo médio unitário no momento da venda
	Freight       decimal.Decimal // frete rateado para a linha
	TransactionID string          // identificador da transação (nota fiscal)
}

// GrossValue valor bruto da linha: preço bruto × qty + frete.
func (r SalesRow) GrossValue() decimal.Decimal {
	return r.UnitGross.Mul(r.Quantity).Add(r.Freight)
}

// NetValue valor líquido da linha: preço líquido × qty + frete.
func (r SalesRow) NetValue() decimal.Decimal {
	return r.UnitNet.Mul(r.Quantity).Add(r.Freight)
}

// CostValue CMV da linha: custo unitário × qty (o frete não compõe custo).
func (r SalesRow) CostValue() decimal.Decimal {
	return r.UnitCost.Mul(r.Quantity)
}
