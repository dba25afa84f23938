package http

import (
	"github.com/gofiber/fiber/v2"

	appdre "github.com/gestaoviva/dre-api/internal/application/dre"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	StatementUC *appdre.StatementUseCase
	PDFUC       *appdre.PDFUseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	dre := api.Group("/dre")
	handler := NewStatementHandler(deps.StatementUC, deps.PDFUC)
	dre.Get("/", handler.GetStatement)
	dre.Get("/pdf", handler.DownloadPDF)
}
