package dre

import (
	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ChannelFigures números fechados de um canal: acumuladores do coletor
// mais os impostos resolvidos. Aritmética pura, sem I/O.
type ChannelFigures struct {
	Channel entity.Channel
	Totals  entity.ChannelTotals
	Taxes   entity.TaxTotals
}

// NetRevenue receita líquida do canal: Net − impostos.
//
// Identidade algébrica exigida: Net − impostos ==
// ReportedGross − Returns − Discounts − impostos. As duas formas são a
// mesma cascata de deduções exibida na DRE e precisam bater bit a bit.
func (f ChannelFigures) NetRevenue() decimal.Decimal {
	return f.Totals.Net.Sub(f.Taxes.Total())
}

// GrossProfit lucro bruto do canal: receita líquida − CMV.
func (f ChannelFigures) GrossProfit() decimal.Decimal {
	return f.NetRevenue().Sub(f.Totals.CMV)
}

// ConsolidatedFigures somas simples dos quatro canais.
type ConsolidatedFigures struct {
	ReportedGross decimal.Decimal
	Returns       decimal.Decimal
	Discounts     decimal.Decimal
	Taxes         decimal.Decimal
	NetRevenue    decimal.Decimal
	CMV           decimal.Decimal
	GrossProfit   decimal.Decimal
}

// Consolidate soma os números de todos os canais.
func Consolidate(channels []ChannelFigures) ConsolidatedFigures {
	c := ConsolidatedFigures{
		ReportedGross: decimal.Zero,
		Returns:       decimal.Zero,
		Discounts:     decimal.Zero,
		Taxes:         decimal.Zero,
		NetRevenue:    decimal.Zero,
		CMV:           decimal.Zero,
		GrossProfit:   decimal.Zero,
	}
	for _, f := range channels {
		c.ReportedGross = c.ReportedGross.Add(f.Totals.ReportedGross())
		c.Returns = c.Returns.Add(f.Totals.Returns)
		c.Discounts = c.Discounts.Add(f.Totals.Discounts())
		c.Taxes = c.Taxes.Add(f.Taxes.Total())
		c.NetRevenue = c.NetRevenue.Add(f.NetRevenue())
		c.CMV = c.CMV.Add(f.Totals.CMV)
		c.GrossProfit = c.GrossProfit.Add(f.GrossProfit())
	}
	return c
}
