package repository

import (
	"context"
	"time"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
)

// PayablesRepository razão de contas a pagar.
// Implementações são read-only.
type PayablesRepository interface {
	// ListEmitted devolve todas as linhas cruas emitidas no período para as
	// empresas dadas, incluindo os rateios por centro de custo (o chamador
	// é responsável pela deduplicação).
	ListEmitted(ctx context.Context, start, end time.Time, companies []string) ([]entity.PayableRecord, error)
}
