package dre

import (
	"time"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatementInput tudo que o montador precisa. Composição pura, sem I/O.
type StatementInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Channels    []ChannelFigures
	Operating   []entity.StatementNode
	Financial   []entity.StatementNode
}

// AssembleStatement compõe a DRE na ordem fixa de apresentação:
//
//	Receita Bruta → Deduções → Receita Líquida → CMV → Lucro Bruto →
//	Despesas Operacionais → Resultado Operacional → Outras Receitas/Despesas →
//	Despesas Financeiras → Resultado Antes do IRPJ/CSLL → IRPJ/CSLL →
//	Lucro Líquido
//
// "Outras Receitas/Despesas" e "IRPJ/CSLL" são linhas abertas fixadas em zero:
// o cálculo de imposto de renda está fora do escopo do motor.
func AssembleStatement(in StatementInput) *entity.Statement {
	consolidated := Consolidate(in.Channels)

	grossRevenue := channelLine("Receita Bruta", entity.NodeRevenue, in.Channels,
		func(f ChannelFigures) decimal.Decimal { return f.Totals.ReportedGross() })

	deductions := deductionsLine(in.Channels, consolidated)

	netRevenue := channelLine("Receita Líquida", entity.NodeRevenue, in.Channels,
		func(f ChannelFigures) decimal.Decimal { return f.NetRevenue() })

	cmv := channelLine("CMV", entity.NodeCost, in.Channels,
		func(f ChannelFigures) decimal.Decimal { return f.Totals.CMV.Neg() })

	grossProfit := channelLine("Lucro Bruto", entity.NodeResult, in.Channels,
		func(f ChannelFigures) decimal.Decimal { return f.GrossProfit() })

	operating := entity.StatementNode{
		Label:    "Despesas Operacionais",
		Category: entity.NodeExpense,
		Children: in.Operating,
	}
	operating.Value = operating.SumChildren()

	// Despesas já são negativas, então os subtotais descem por soma direta.
	operatingResult := entity.StatementNode{
		Label:    "Resultado Operacional",
		Category: entity.NodeResult,
		Value:    consolidated.GrossProfit.Add(operating.Value),
	}

	otherIncome := entity.StatementNode{
		Label:    "Outras Receitas e Despesas",
		Category: entity.NodeOther,
		Value:    decimal.Zero,
	}

	financial := entity.StatementNode{
		Label:    "Despesas Financeiras",
		Category: entity.NodeExpense,
		Children: in.Financial,
	}
	financial.Value = financial.SumChildren()

	preTax := entity.StatementNode{
		Label:    "Resultado Antes do IRPJ/CSLL",
		Category: entity.NodeResult,
		Value:    operatingResult.Value.Add(otherIncome.Value).Add(financial.Value),
	}

	incomeTaxes := entity.StatementNode{
		Label:    "IRPJ e CSLL",
		Category: entity.NodeTax,
		Value:    decimal.Zero,
	}

	netProfit := entity.StatementNode{
		Label:    "Lucro Líquido",
		Category: entity.NodeResult,
		Value:    preTax.Value.Sub(incomeTaxes.Value),
	}

	return &entity.Statement{
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Lines: []entity.StatementNode{
			grossRevenue,
			deductions,
			netRevenue,
			cmv,
			grossProfit,
			operating,
			operatingResult,
			otherIncome,
			financial,
			preTax,
			incomeTaxes,
			netProfit,
		},
	}
}

// channelLine linha com abertura por canal; o valor da linha é a soma dos canais.
func channelLine(
	label string,
	category entity.NodeCategory,
	channels []ChannelFigures,
	value func(ChannelFigures) decimal.Decimal,
) entity.StatementNode {
	node := entity.StatementNode{Label: label, Category: category}
	for _, f := range channels {
		node.Children = append(node.Children, entity.StatementNode{
			Label:    f.Channel.DisplayName(),
			Category: category,
			Value:    value(f),
		})
	}
	node.Value = node.SumChildren()
	return node
}

// deductionsLine deduções da receita: devoluções, descontos e impostos sobre
// vendas, estes abertos por canal e por tipo de imposto. Tudo negativo.
func deductionsLine(channels []ChannelFigures, consolidated ConsolidatedFigures) entity.StatementNode {
	returns := entity.StatementNode{
		Label:    "Devoluções",
		Category: entity.NodeDeduction,
		Value:    consolidated.Returns.Neg(),
	}
	discounts := entity.StatementNode{
		Label:    "Descontos",
		Category: entity.NodeDeduction,
		Value:    consolidated.Discounts.Neg(),
	}

	taxes := entity.StatementNode{Label: "Impostos sobre Vendas", Category: entity.NodeTax}
	for _, f := range channels {
		channelTaxes := entity.StatementNode{
			Label:    f.Channel.DisplayName(),
			Category: entity.NodeTax,
			Children: []entity.StatementNode{
				{Label: "ICMS", Category: entity.NodeTax, Value: f.Taxes.ICMS.Neg()},
				{Label: "PIS", Category: entity.NodeTax, Value: f.Taxes.PIS.Neg()},
				{Label: "COFINS", Category: entity.NodeTax, Value: f.Taxes.COFINS.Neg()},
			},
		}
		channelTaxes.Value = channelTaxes.SumChildren()
		taxes.Children = append(taxes.Children, channelTaxes)
	}
	taxes.Value = taxes.SumChildren()

	node := entity.StatementNode{
		Label:    "Deduções da Receita",
		Category: entity.NodeDeduction,
		Children: []entity.StatementNode{returns, discounts, taxes},
	}
	node.Value = node.SumChildren()
	return node
}
