package entity

import "github.com/shopspring/decimal"

// Códigos de imposto do razão fiscal por transação.
// Qualquer outro código é ignorado pelo resolvedor (forward-compatible).
const (
	TaxCodeICMS   = 1
	TaxCodeCOFINS = 5
	TaxCodePIS    = 6
)

// TaxLine uma linha do razão fiscal: imposto apurado para uma transação.
type TaxLine struct {
	TransactionID string
	Code          int
	Amount        decimal.Decimal
}

// TaxTotals impostos acumulados por tipo (ICMS, PIS, COFINS).
type TaxTotals struct {
	ICMS   decimal.Decimal
	PIS    decimal.Decimal
	COFINS decimal.Decimal
}

// ZeroTaxTotals totais zerados.
func ZeroTaxTotals() TaxTotals {
	return TaxTotals{ICMS: decimal.Zero, PIS: decimal.Zero, COFINS: decimal.Zero}
}

// Total soma dos três impostos rastreados.
func (t TaxTotals) Total() decimal.Decimal {
	return t.ICMS.Add(t.PIS).Add(t.COFINS)
}

// AddLine devolve novos totais com a linha somada no balde do seu código.
// Códigos desconhecidos não alteram nada.
func (t TaxTotals) AddLine(line TaxLine) TaxTotals {
	switch line.Code {
	case TaxCodeICMS:
		t.ICMS = t.ICMS.Add(line.Amount)
	case TaxCodeCOFINS:
		t.COFINS = t.COFINS.Add(line.Amount)
	case TaxCodePIS:
		t.PIS = t.PIS.Add(line.Amount)
	}
	return t
}

// TaxResolution resultado do resolvedor de impostos de um canal:
// totais por transação e totais consolidados do canal. Imutável após construído.
type TaxResolution struct {
	PerTransaction map[string]TaxTotals
	Totals         TaxTotals
}
