// Package pdf implementa a exportação da DRE como relatório A4.
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Demonstração do Resultado  │  Período              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LINHAS: rótulo (indentado por nível)       |       valor   │
//	│    linhas de topo em negrito; resultados destacados         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: carimbo de geração                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 61, Blue: 94}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 160, Green: 32, Blue: 32}
)

// maxPDFDepth profundidade máxima renderizada; além disso a árvore de
// fornecedores ficaria ilegível em A4 (a UI web expande tudo).
const maxPDFDepth = 3

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa dre.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator constrói o gerador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator {
	return &MarotoStatementGenerator{}
}

// GenerateStatementPDF renderiza a DRE e devolve os bytes do PDF.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	statement *entity.Statement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Demonstração do Resultado do Exercício", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(statement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, lineNode := range statement.Lines {
		for _, r := range nodeRows(lineNode, 0) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow título do relatório + período consultado.
func headerRow(statement *entity.Statement) core.Row {
	period := fmt.Sprintf("%s a %s",
		statement.PeriodStart.Format("02/01/2006"),
		statement.PeriodEnd.Format("02/01/2006"))

	return row.New(16).Add(
		col.New(8).Add(
			text.New("DEMONSTRAÇÃO DO RESULTADO DO EXERCÍCIO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Consolidado — Varejo, Multimarcas, Franquia e Revenda", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Período", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

// nodeRows uma linha por nó, recursivo, com indentação por profundidade.
func nodeRows(node entity.StatementNode, depth int) []core.Row {
	if depth > maxPDFDepth {
		return nil
	}

	indent := strings.Repeat("    ", depth)
	style := fontstyle.Normal
	size := 8.5
	height := 6.0
	if depth == 0 {
		style = fontstyle.Bold
		size = 9.5
		height = 8.0
	}

	rows := []core.Row{row.New(height).Add(
		col.New(9).Add(text.New(indent+node.Label, props.Text{
			Style: style, Size: size, Top: 1, Color: labelColor(node.Category, depth),
		})),
		col.New(3).Add(text.New(formatValue(node.Value), props.Text{
			Style: style, Size: size, Align: align.Right, Top: 1, Right: 1,
			Color: valueColor(node.Value),
		})),
	)}

	for _, child := range node.Children {
		rows = append(rows, nodeRows(child, depth+1)...)
	}
	return rows
}

// footerRow carimbo de geração.
func footerRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Gerado em %s — valores em reais (BRL). Subtotais conferem com a soma das aberturas.",
				time.Now().Format("02/01/2006 15:04")),
			props.Text{Size: 6.5, Color: colorGray, Top: 1},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// labelColor cor do rótulo por categoria do nó. O switch é exaustivo sobre o
// enum de categorias; categoria nova sem tratamento cai no cinza e aparece na
// revisão visual.
func labelColor(category entity.NodeCategory, depth int) *props.Color {
	if depth > 0 {
		return colorGray
	}
	switch category {
	case entity.NodeRevenue, entity.NodeResult:
		return colorPrimary
	case entity.NodeDeduction, entity.NodeCost, entity.NodeExpense, entity.NodeTax:
		return colorRed
	case entity.NodeOther:
		return colorGray
	}
	return colorGray
}

func valueColor(v decimal.Decimal) *props.Color {
	if v.IsNegative() {
		return colorRed
	}
	return nil
}

// formatValue formata em pt-BR: milhar com ponto, decimal com vírgula.
// Ex: -1234567.50 → "-1.234.567,50"
func formatValue(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}

	out := string(buf) + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
