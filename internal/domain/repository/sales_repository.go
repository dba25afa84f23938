package repository

import (
	"context"
	"time"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
)

// SalesQuery filtro do feed de vendas de um canal: período, lista de
// empresas do canal e, opcionalmente, o código de classificação do cliente
// (usado pelo canal Multimarcas, que compartilha empresas com o Varejo).
type SalesQuery struct {
	Start          time.Time
	End            time.Time
	Companies      []string
	Classification string // vazio = sem filtro de classificação
}

// SalesRepository feed de vendas (um fetch por canal, filtro decide o canal).
// Implementações são read-only.
type SalesRepository interface {
	// ListPeriod devolve todas as linhas de venda/devolução do filtro.
	// Período sem vendas devolve slice vazio, não erro.
	ListPeriod(ctx context.Context, q SalesQuery) ([]entity.SalesRow, error)
}
