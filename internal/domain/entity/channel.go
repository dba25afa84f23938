package entity

import "github.com/shopspring/decimal"

// Channel identifica um dos quatro canais de venda do grupo.
type Channel string

// Canais de venda. A ordem de Channels define a ordem das aberturas
// por canal em todas as linhas da DRE.
const (
	ChannelVarejo      Channel = "VAREJO"
	ChannelMultimarcas Channel = "MULTIMARCAS"
	ChannelFranquia    Channel = "FRANQUIA"
	ChannelRevenda     Channel = "REVENDA"
)

// Channels na ordem canônica de apresentação.
var Channels = []Channel{ChannelVarejo, ChannelMultimarcas, ChannelFranquia, ChannelRevenda}

// DisplayName nome do canal para rótulos da DRE.
func (c Channel) DisplayName() string {
	switch c {
	case ChannelVarejo:
		return "Varejo"
	case ChannelMultimarcas:
		return "Multimarcas"
	case ChannelFranquia:
		return "Franquia"
	case ChannelRevenda:
		return "Revenda"
	}
	return string(c)
}

// ChannelTotals acumuladores de um canal após o fold de todas as suas linhas.
// Gross/Net/CMV já estão líquidos de devoluções (as devoluções entram com
// sinal negativo no fold); Returns guarda a magnitude do valor líquido devolvido
// e nunca é negativo. Construído uma vez pelo coletor e imutável depois disso.
type ChannelTotals struct {
	Gross   decimal.Decimal // faturamento bruto, líquido de devoluções
	Net     decimal.Decimal // faturamento líquido, líquido de devoluções
	CMV     decimal.Decimal // custo das mercadorias vendidas, líquido de devoluções
	Returns decimal.Decimal // soma dos valores líquidos devolvidos (sempre >= 0)
}

// ZeroChannelTotals acumulador vazio (feed sem linhas no período).
func ZeroChannelTotals() ChannelTotals {
	return ChannelTotals{
		Gross:   decimal.Zero,
		Net:     decimal.Zero,
		CMV:     decimal.Zero,
		Returns: decimal.Zero,
	}
}

// ReportedGross reconstrói a receita bruta antes das devoluções,
// que é o valor exibido na linha "Receita Bruta" da DRE.
func (t ChannelTotals) ReportedGross() decimal.Decimal {
	return t.Gross.Add(t.Returns)
}

// Discounts descontos concedidos: diferença entre bruto e líquido acumulados.
func (t ChannelTotals) Discounts() decimal.Decimal {
	return t.Gross.Sub(t.Net)
}
