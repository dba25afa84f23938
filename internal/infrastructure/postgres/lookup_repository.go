package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

var _ repository.LookupRepository = (*LookupRepo)(nil)

// LookupRepo resolução de nomes de cadastro (itens de despesa e fornecedores).
type LookupRepo struct {
	pool *pgxpool.Pool
}

// NewLookupRepository constrói o adaptador de cadastro.
func NewLookupRepository(pool *pgxpool.Pool) *LookupRepo {
	return &LookupRepo{pool: pool}
}

// ResolveExpenseNames devolve código → nome do item de despesa.
// Códigos sem cadastro simplesmente não aparecem no mapa.
func (r *LookupRepo) ResolveExpenseNames(ctx context.Context, codes []string) (map[string]string, error) {
	const query = `SELECT codigo, nome FROM itens_despesa WHERE codigo = ANY($1)`
	return r.resolve(ctx, query, codes, "cadastro.ResolveExpenseNames")
}

// ResolveSupplierNames devolve código → razão social do fornecedor.
func (r *LookupRepo) ResolveSupplierNames(ctx context.Context, codes []string) (map[string]string, error) {
	const query = `SELECT codigo, razao_social FROM fornecedores WHERE codigo = ANY($1)`
	return r.resolve(ctx, query, codes, "cadastro.ResolveSupplierNames")
}

func (r *LookupRepo) resolve(ctx context.Context, query string, codes []string, op string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}
	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	names := make(map[string]string, len(codes))
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		names[code] = name
	}
	return names, rows.Err()
}
