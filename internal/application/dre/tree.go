package dre

import (
	"context"
	"fmt"
	"sort"

	domaindre "github.com/gestaoviva/dre-api/internal/domain/dre"
	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

// operatingExclusions categorias fora da árvore de despesas operacionais:
// cada uma é reportada em linha própria da DRE (CMV, impostos sobre vendas,
// investimento em imobilizado e despesas financeiras).
var operatingExclusions = map[domaindre.ExpenseCategory]struct{}{
	domaindre.CategoryCOGS:      {},
	domaindre.CategoryTaxes:     {},
	domaindre.CategoryAssets:    {},
	domaindre.CategoryFinancial: {},
}

// TreeBuilder monta as duas florestas de despesas da DRE a partir dos grupos
// do contas a pagar: categoria → descrição do item → fornecedor+documento.
// Despesas entram com valor negativo; todo nó pai é a soma dos filhos.
type TreeBuilder struct {
	lookupRepo repository.LookupRepository
}

// NewTreeBuilder constrói o montador de árvores.
func NewTreeBuilder(lookupRepo repository.LookupRepository) *TreeBuilder {
	return &TreeBuilder{lookupRepo: lookupRepo}
}

// Build classifica os grupos e devolve a floresta operacional e a financeira.
//
// A resolução de nomes é best-effort: falha ou código ausente cai para a
// descrição/código crus e nunca aborta a montagem. A floresta financeira
// exclui descrições de empréstimo/financiamento — principal financiado não é
// despesa financeira operacional.
func (b *TreeBuilder) Build(ctx context.Context, groups []PayableGroup) (operating, financial []entity.StatementNode) {
	expenseNames, supplierNames := b.resolveNames(ctx, groups)

	var operatingGroups, financialGroups []classifiedGroup
	for _, g := range groups {
		cg := classifiedGroup{
			group:    g,
			category: domaindre.ClassifyExpense(g.Record.ItemCode),
		}
		cg.description = expenseNames[g.Record.ItemCode]
		if cg.description == "" {
			cg.description = g.Record.ItemName
		}
		cg.supplier = supplierNames[g.Record.SupplierCode]
		if cg.supplier == "" {
			cg.supplier = g.Record.SupplierName
		}

		if cg.category == domaindre.CategoryFinancial {
			if !domaindre.IsLoanDescription(cg.description) {
				financialGroups = append(financialGroups, cg)
			}
			continue
		}
		if _, excluded := operatingExclusions[cg.category]; !excluded {
			operatingGroups = append(operatingGroups, cg)
		}
	}

	return buildForest(operatingGroups), buildForest(financialGroups)
}

type classifiedGroup struct {
	group       PayableGroup
	category    domaindre.ExpenseCategory
	description string
	supplier    string
}

// resolveNames busca em lote os nomes de itens de despesa e fornecedores.
// Erros viram mapas vazios (fallback para os campos crus).
func (b *TreeBuilder) resolveNames(ctx context.Context, groups []PayableGroup) (map[string]string, map[string]string) {
	itemCodes := make([]string, 0, len(groups))
	supplierCodes := make([]string, 0, len(groups))
	seenItems := make(map[string]struct{})
	seenSuppliers := make(map[string]struct{})
	for _, g := range groups {
		if _, ok := seenItems[g.Record.ItemCode]; !ok {
			seenItems[g.Record.ItemCode] = struct{}{}
			itemCodes = append(itemCodes, g.Record.ItemCode)
		}
		if _, ok := seenSuppliers[g.Record.SupplierCode]; !ok {
			seenSuppliers[g.Record.SupplierCode] = struct{}{}
			supplierCodes = append(supplierCodes, g.Record.SupplierCode)
		}
	}

	expenseNames, err := b.lookupRepo.ResolveExpenseNames(ctx, itemCodes)
	if err != nil {
		expenseNames = map[string]string{}
	}
	supplierNames, err := b.lookupRepo.ResolveSupplierNames(ctx, supplierCodes)
	if err != nil {
		supplierNames = map[string]string{}
	}
	return expenseNames, supplierNames
}

// buildForest agrupa em três níveis e soma os totais de baixo para cima.
// Folha fornecedor+documento: valor = -(soma dos valores de face do grupo).
func buildForest(groups []classifiedGroup) []entity.StatementNode {
	byCategory := make(map[domaindre.ExpenseCategory][]classifiedGroup)
	for _, cg := range groups {
		byCategory[cg.category] = append(byCategory[cg.category], cg)
	}

	forest := make([]entity.StatementNode, 0, len(byCategory))
	for category, catGroups := range byCategory {
		byDescription := make(map[string][]classifiedGroup)
		for _, cg := range catGroups {
			byDescription[cg.description] = append(byDescription[cg.description], cg)
		}

		descNodes := make([]entity.StatementNode, 0, len(byDescription))
		for description, descGroups := range byDescription {
			leaves := buildSupplierLeaves(descGroups)
			node := entity.StatementNode{
				Label:    description,
				Category: entity.NodeExpense,
				Children: leaves,
			}
			node.Value = node.SumChildren()
			descNodes = append(descNodes, node)
		}
		sortNodes(descNodes)

		catNode := entity.StatementNode{
			Label:    category.DisplayName(),
			Category: entity.NodeExpense,
			Children: descNodes,
		}
		catNode.Value = catNode.SumChildren()
		forest = append(forest, catNode)
	}

	sortNodes(forest)
	return forest
}

// buildSupplierLeaves nível folha: fornecedor + documento (duplicata/parcela).
func buildSupplierLeaves(groups []classifiedGroup) []entity.StatementNode {
	order := make([]string, 0, len(groups))
	leaves := make(map[string]entity.StatementNode)

	for _, cg := range groups {
		r := cg.group.Record
		key := fmt.Sprintf("%s|%s|%s|%s|%s", r.Company, r.SupplierCode, cg.supplier, r.DuplicateNo, r.InstallmentNo)
		node, ok := leaves[key]
		if !ok {
			order = append(order, key)
			node = entity.StatementNode{
				Label:    fmt.Sprintf("%s - %s/%s", cg.supplier, r.DuplicateNo, r.InstallmentNo),
				Category: entity.NodeExpense,
			}
		}
		node.Value = node.Value.Sub(r.FaceValue)
		leaves[key] = node
	}

	out := make([]entity.StatementNode, 0, len(order))
	for _, key := range order {
		out = append(out, leaves[key])
	}
	sortNodes(out)
	return out
}

// sortNodes ordena por valor absoluto decrescente (maior despesa primeiro);
// empate desempata por rótulo para manter a saída determinística.
func sortNodes(nodes []entity.StatementNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		ai, aj := nodes[i].Value.Abs(), nodes[j].Value.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return nodes[i].Label < nodes[j].Label
	})
}
