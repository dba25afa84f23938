package dto

import (
	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatementDTO resposta de GET /api/dre.
// A DRE completa do período: sequência ordenada de linhas, cada uma uma
// árvore expansível (canal, categoria de despesa, fornecedor...).
type StatementDTO struct {
	PeriodStart string             `json:"period_start"` // AAAA-MM-DD
	PeriodEnd   string             `json:"period_end"`   // AAAA-MM-DD
	Lines       []StatementNodeDTO `json:"lines"`
}

// StatementNodeDTO um nó da árvore da DRE.
type StatementNodeDTO struct {
	Label    string             `json:"label"`
	Value    decimal.Decimal    `json:"value"`
	Category string             `json:"category"` // RECEITA, DEDUCAO, CUSTO, DESPESA, IMPOSTO, RESULTADO, OUTROS
	Children []StatementNodeDTO `json:"children,omitempty"`
}

// FromStatement converte a entidade de domínio para o DTO de resposta.
func FromStatement(s *entity.Statement) StatementDTO {
	lines := make([]StatementNodeDTO, 0, len(s.Lines))
	for _, n := range s.Lines {
		lines = append(lines, fromNode(n))
	}
	return StatementDTO{
		PeriodStart: s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   s.PeriodEnd.Format("2006-01-02"),
		Lines:       lines,
	}
}

func fromNode(n entity.StatementNode) StatementNodeDTO {
	dto := StatementNodeDTO{
		Label:    n.Label,
		Value:    n.Value,
		Category: string(n.Category),
	}
	for _, c := range n.Children {
		dto.Children = append(dto.Children, fromNode(c))
	}
	return dto
}
