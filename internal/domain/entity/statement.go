package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NodeCategory classifica cada nó da DRE. É um enum fechado: a camada de
// formatação (PDF, DTO) faz switch exaustivo sobre ele.
type NodeCategory string

// Categorias de nó da DRE.
const (
	NodeRevenue   NodeCategory = "RECEITA"
	NodeDeduction NodeCategory = "DEDUCAO"
	NodeCost      NodeCategory = "CUSTO"
	NodeExpense   NodeCategory = "DESPESA"
	NodeTax       NodeCategory = "IMPOSTO"
	NodeResult    NodeCategory = "RESULTADO"
	NodeOther     NodeCategory = "OUTROS"
)

// StatementNode um nó da árvore da DRE.
//
// Invariante: em todo nó não-folha, Value é exatamente a soma (com sinal)
// dos Value dos filhos. Violar isso é bug de corretude, não de exibição.
type StatementNode struct {
	Label    string
	Value    decimal.Decimal
	Category NodeCategory
	Children []StatementNode
}

// IsLeaf indica se o nó não tem filhos.
func (n StatementNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// SumChildren soma os valores dos filhos diretos.
func (n StatementNode) SumChildren() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range n.Children {
		sum = sum.Add(c.Value)
	}
	return sum
}

// Statement a DRE montada: sequência ordenada de linhas de topo.
// Construída uma vez por consulta e descartada após o consumo.
type Statement struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Lines       []StatementNode
}
