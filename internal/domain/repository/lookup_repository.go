package repository

import "context"

// LookupRepository resolução de nomes de cadastro (itens de despesa e
// fornecedores). Best-effort: um código ausente no mapa devolvido faz o
// chamador usar o código/descrição cru — nunca aborta a montagem da DRE.
type LookupRepository interface {
	// ResolveExpenseNames devolve código → nome do item de despesa.
	ResolveExpenseNames(ctx context.Context, codes []string) (map[string]string, error)

	// ResolveSupplierNames devolve código → razão social do fornecedor.
	ResolveSupplierNames(ctx context.Context, codes []string) (map[string]string, error)
}
