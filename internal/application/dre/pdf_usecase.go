package dre

import (
	"context"
	"fmt"
	"time"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
)

// StatementPDFGenerator porta para a renderização da DRE em PDF.
// A implementação concreta vive em infrastructure/pdf.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, statement *entity.Statement) ([]byte, error)
}

// PDFUseCase monta a DRE do período e a renderiza como relatório A4.
type PDFUseCase struct {
	statementUC *StatementUseCase
	generator   StatementPDFGenerator
}

// NewPDFUseCase constrói o caso de uso.
func NewPDFUseCase(statementUC *StatementUseCase, generator StatementPDFGenerator) *PDFUseCase {
	return &PDFUseCase{statementUC: statementUC, generator: generator}
}

// DownloadStatementPDF monta a DRE e devolve os bytes do PDF com o nome do
// arquivo sugerido (dre_AAAAMMDD_AAAAMMDD.pdf).
func (uc *PDFUseCase) DownloadStatementPDF(
	ctx context.Context,
	start, end time.Time,
) (pdfBytes []byte, filename string, err error) {
	statement, err := uc.statementUC.Build(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, statement)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: geração falhou: %w", err)
	}

	filename = fmt.Sprintf("dre_%s_%s.pdf", start.Format("20060102"), end.Format("20060102"))
	return pdfBytes, filename, nil
}
