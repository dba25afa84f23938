package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	appdre "github.com/gestaoviva/dre-api/internal/application/dre"
	"github.com/gestaoviva/dre-api/internal/application/dto"
	"github.com/gestaoviva/dre-api/internal/domain"
)

// StatementHandler endpoints do módulo de DRE.
type StatementHandler struct {
	statementUC *appdre.StatementUseCase
	pdfUC       *appdre.PDFUseCase
}

// NewStatementHandler constrói o handler.
func NewStatementHandler(statementUC *appdre.StatementUseCase, pdfUC *appdre.PDFUseCase) *StatementHandler {
	return &StatementHandler{statementUC: statementUC, pdfUC: pdfUC}
}

// GetStatement monta e devolve a DRE do período.
// GET /api/dre?start=AAAA-MM-DD&end=AAAA-MM-DD
//
// Resposta: StatementDTO (linhas ordenadas, cada uma uma árvore expansível).
// Falha de qualquer colaborador externo aborta a montagem: uma DRE parcial
// nunca é devolvida como completa, e a mensagem de erro nomeia o estágio que
// falhou (canal, resolução de impostos ou contas a pagar).
func (h *StatementHandler) GetStatement(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PERIOD", Message: err.Error(),
		})
	}

	statement, err := h.statementUC.Build(c.Context(), start, end)
	if err != nil {
		return buildError(c, err)
	}

	return c.JSON(dto.FromStatement(statement))
}

// DownloadPDF monta a DRE do período e devolve o relatório em PDF.
// GET /api/dre/pdf?start=AAAA-MM-DD&end=AAAA-MM-DD
func (h *StatementHandler) DownloadPDF(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PERIOD", Message: err.Error(),
		})
	}

	pdfBytes, filename, err := h.pdfUC.DownloadStatementPDF(c.Context(), start, end)
	if err != nil {
		return buildError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parsePeriod lê e valida os parâmetros start/end (AAAA-MM-DD).
func parsePeriod(c *fiber.Ctx) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	end, err = time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	return start, end, nil
}

// buildError mapeia erros da montagem para o envelope HTTP.
func buildError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidPeriod) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PERIOD", Message: err.Error(),
		})
	}
	// Falha de colaborador externo: a mensagem já nomeia o estágio.
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
		Code: "BUILD_FAILED", Message: err.Error(),
	})
}
