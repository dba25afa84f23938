package dre_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdre "github.com/gestaoviva/dre-api/internal/application/dre"
	"github.com/gestaoviva/dre-api/internal/domain/entity"
)

// statementOrder a sequência fixa de apresentação da DRE.
var statementOrder = []string{
	"Receita Bruta",
	"Deduções da Receita",
	"Receita Líquida",
	"CMV",
	"Lucro Bruto",
	"Despesas Operacionais",
	"Resultado Operacional",
	"Outras Receitas e Despesas",
	"Despesas Financeiras",
	"Resultado Antes do IRPJ/CSLL",
	"IRPJ e CSLL",
	"Lucro Líquido",
}

func sampleInput() appdre.StatementInput {
	return appdre.StatementInput{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Channels: []appdre.ChannelFigures{
			{
				Channel: entity.ChannelVarejo,
				Totals:  entity.ChannelTotals{Gross: dec("1000"), Net: dec("900"), CMV: dec("500"), Returns: dec("100")},
				Taxes:   entity.TaxTotals{ICMS: dec("90"), PIS: dec("9"), COFINS: dec("27")},
			},
			{
				Channel: entity.ChannelFranquia,
				Totals:  entity.ChannelTotals{Gross: dec("2000"), Net: dec("1800"), CMV: dec("1000"), Returns: dec("50")},
				Taxes:   entity.TaxTotals{ICMS: dec("180"), PIS: dec("18"), COFINS: dec("54")},
			},
		},
		Operating: []entity.StatementNode{
			{Label: "Despesas com Pessoal", Category: entity.NodeExpense, Value: dec("-300"), Children: []entity.StatementNode{
				{Label: "SALARIOS", Category: entity.NodeExpense, Value: dec("-300"), Children: []entity.StatementNode{
					{Label: "FOLHA - D1/1", Category: entity.NodeExpense, Value: dec("-300")},
				}},
			}},
		},
		Financial: []entity.StatementNode{
			{Label: "Despesas Financeiras", Category: entity.NodeExpense, Value: dec("-40"), Children: []entity.StatementNode{
				{Label: "TARIFAS", Category: entity.NodeExpense, Value: dec("-40"), Children: []entity.StatementNode{
					{Label: "BANCO X - D2/1", Category: entity.NodeExpense, Value: dec("-40")},
				}},
			}},
		},
	}
}

// assertTreeSums verifica recursivamente o invariante: todo nó não-folha tem
// valor igual à soma dos filhos.
func assertTreeSums(t *testing.T, node entity.StatementNode) {
	t.Helper()
	if node.IsLeaf() {
		return
	}
	assert.True(t, node.Value.Equal(node.SumChildren()),
		"nó %q deve somar os filhos: valor=%s soma=%s", node.Label, node.Value, node.SumChildren())
	for _, child := range node.Children {
		assertTreeSums(t, child)
	}
}

// TestAssembleStatement_OrdemFixa as doze linhas saem sempre na mesma ordem.
func TestAssembleStatement_OrdemFixa(t *testing.T) {
	st := appdre.AssembleStatement(sampleInput())

	require.Len(t, st.Lines, 12)
	for i, line := range st.Lines {
		assert.Equal(t, statementOrder[i], line.Label, "linha %d fora de ordem", i)
	}
}

// TestAssembleStatement_InvarianteDeSoma todo nó composto da DRE inteira soma
// os próprios filhos.
func TestAssembleStatement_InvarianteDeSoma(t *testing.T) {
	st := appdre.AssembleStatement(sampleInput())

	for _, line := range st.Lines {
		assertTreeSums(t, line)
	}
}

// TestAssembleStatement_Cascata a cascata de resultados fecha de ponta a ponta.
func TestAssembleStatement_Cascata(t *testing.T) {
	st := appdre.AssembleStatement(sampleInput())
	byLabel := make(map[string]entity.StatementNode, len(st.Lines))
	for _, line := range st.Lines {
		byLabel[line.Label] = line
	}

	// Receita Bruta = ReportedGross dos canais: (1000+100) + (2000+50).
	assert.True(t, byLabel["Receita Bruta"].Value.Equal(dec("3150")))

	// Deduções = −(devoluções + descontos + impostos) = −(150 + 300 + 378).
	assert.True(t, byLabel["Deduções da Receita"].Value.Equal(dec("-828")))

	// Receita Líquida = Bruta + Deduções (deduções já negativas).
	expectedNet := byLabel["Receita Bruta"].Value.Add(byLabel["Deduções da Receita"].Value)
	assert.True(t, byLabel["Receita Líquida"].Value.Equal(expectedNet),
		"Receita Líquida deve fechar com a cascata: %s vs %s", byLabel["Receita Líquida"].Value, expectedNet)

	// Lucro Bruto = Líquida + CMV (CMV negativo).
	expectedGrossProfit := byLabel["Receita Líquida"].Value.Add(byLabel["CMV"].Value)
	assert.True(t, byLabel["Lucro Bruto"].Value.Equal(expectedGrossProfit))

	// Resultado Operacional = Lucro Bruto + Despesas Operacionais.
	assert.True(t, byLabel["Resultado Operacional"].Value.
		Equal(byLabel["Lucro Bruto"].Value.Add(byLabel["Despesas Operacionais"].Value)))

	// Resultado antes do IRPJ = Operacional + Outras + Financeiras.
	assert.True(t, byLabel["Resultado Antes do IRPJ/CSLL"].Value.
		Equal(byLabel["Resultado Operacional"].Value.
			Add(byLabel["Outras Receitas e Despesas"].Value).
			Add(byLabel["Despesas Financeiras"].Value)))

	// Lucro Líquido = antes do IRPJ − IRPJ/CSLL.
	assert.True(t, byLabel["Lucro Líquido"].Value.
		Equal(byLabel["Resultado Antes do IRPJ/CSLL"].Value.Sub(byLabel["IRPJ e CSLL"].Value)))
}

// TestAssembleStatement_LinhasFixadasEmZero IRPJ/CSLL e Outras Receitas são
// linhas de apresentação fixadas em zero.
func TestAssembleStatement_LinhasFixadasEmZero(t *testing.T) {
	st := appdre.AssembleStatement(sampleInput())

	assert.True(t, st.Lines[7].Value.IsZero(), "Outras Receitas e Despesas é zero")
	assert.True(t, st.Lines[10].Value.IsZero(), "IRPJ e CSLL é zero")
}

// TestAssembleStatement_AberturaPorCanal as linhas de receita abrem por canal
// na ordem recebida, e os impostos abrem por canal e por tipo.
func TestAssembleStatement_AberturaPorCanal(t *testing.T) {
	st := appdre.AssembleStatement(sampleInput())

	gross := st.Lines[0]
	require.Len(t, gross.Children, 2)
	assert.Equal(t, "Varejo", gross.Children[0].Label)
	assert.Equal(t, "Franquia", gross.Children[1].Label)
	assert.True(t, gross.Children[0].Value.Equal(dec("1100")))

	deductions := st.Lines[1]
	require.Len(t, deductions.Children, 3)
	assert.Equal(t, "Devoluções", deductions.Children[0].Label)
	assert.Equal(t, "Descontos", deductions.Children[1].Label)

	taxes := deductions.Children[2]
	assert.Equal(t, "Impostos sobre Vendas", taxes.Label)
	require.Len(t, taxes.Children, 2)
	varejoTaxes := taxes.Children[0]
	require.Len(t, varejoTaxes.Children, 3)
	assert.Equal(t, "ICMS", varejoTaxes.Children[0].Label)
	assert.True(t, varejoTaxes.Children[0].Value.Equal(dec("-90")), "imposto entra negativo")
	assert.Equal(t, "PIS", varejoTaxes.Children[1].Label)
	assert.Equal(t, "COFINS", varejoTaxes.Children[2].Label)
}

// TestAssembleStatement_SemMovimento período sem vendas nem despesas produz
// uma DRE estruturalmente completa, toda zerada.
func TestAssembleStatement_SemMovimento(t *testing.T) {
	st := appdre.AssembleStatement(appdre.StatementInput{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Channels: []appdre.ChannelFigures{
			{Channel: entity.ChannelVarejo, Totals: entity.ZeroChannelTotals(), Taxes: entity.ZeroTaxTotals()},
		},
	})

	require.Len(t, st.Lines, 12)
	for _, line := range st.Lines {
		assert.True(t, line.Value.IsZero(), "linha %q deve ser zero sem movimento", line.Label)
	}
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), st.PeriodStart)
}
