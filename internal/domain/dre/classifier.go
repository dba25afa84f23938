// Package dre contém os serviços de domínio puros do motor de DRE:
// classificação de despesas do contas a pagar e normalização de texto.
package dre

import "strconv"

// ExpenseCategory categoria contábil atribuída a um grupo do contas a pagar.
type ExpenseCategory string

// Categorias de despesa. Quatro delas (custo, impostos, imobilizado e
// financeiras) não entram na árvore de despesas operacionais porque são
// reportadas em linhas próprias da DRE.
const (
	CategoryTaxes        ExpenseCategory = "IMPOSTOS_TAXAS"
	CategorySpecialOps   ExpenseCategory = "OPERACIONAIS_ESPECIAIS"
	CategoryCOGS         ExpenseCategory = "CUSTO_MERCADORIAS"
	CategoryRent         ExpenseCategory = "ALUGUEIS"
	CategoryPayroll      ExpenseCategory = "FOLHA_PAGAMENTO"
	CategoryGeneral      ExpenseCategory = "DESPESAS_GERAIS"
	CategoryFinancial    ExpenseCategory = "DESPESAS_FINANCEIRAS"
	CategoryOtherOps     ExpenseCategory = "OUTRAS_OPERACIONAIS"
	CategorySales        ExpenseCategory = "DESPESAS_COMERCIAIS"
	CategoryAssets       ExpenseCategory = "IMOBILIZADO"
	CategoryUnclassified ExpenseCategory = "NAO_CLASSIFICADA"
)

// DisplayName rótulo da categoria nas árvores da DRE.
func (c ExpenseCategory) DisplayName() string {
	switch c {
	case CategoryTaxes:
		return "Impostos e Taxas"
	case CategorySpecialOps:
		return "Despesas Operacionais Especiais"
	case CategoryCOGS:
		return "Custo das Mercadorias"
	case CategoryRent:
		return "Aluguéis e Condomínios"
	case CategoryPayroll:
		return "Despesas com Pessoal"
	case CategoryGeneral:
		return "Despesas Gerais"
	case CategoryFinancial:
		return "Despesas Financeiras"
	case CategoryOtherOps:
		return "Outras Despesas Operacionais"
	case CategorySales:
		return "Despesas Comerciais"
	case CategoryAssets:
		return "Imobilizado"
	case CategoryUnclassified:
		return "Não Classificadas"
	}
	return string(c)
}

// categoryException um conjunto de códigos de item de despesa mapeado
// explicitamente para uma categoria, fora das faixas numéricas.
type categoryException struct {
	category ExpenseCategory
	codes    map[string]struct{}
}

// categoryExceptions tabela de exceções em ordem de precedência.
// Um código presente em mais de um conjunto resolve SEMPRE para a
// categoria listada primeiro; a ordem abaixo não pode ser alterada
// sem alinhar com o financeiro.
var categoryExceptions = []categoryException{
	{CategoryTaxes, codeSet("2250", "2301", "2302", "2310", "4505")},
	{CategorySpecialOps, codeSet("3901", "3902")},
	{CategoryCOGS, codeSet("1105", "1110")},
	{CategoryRent, codeSet("3301", "3302")},
	{CategoryPayroll, codeSet("2105", "2110", "2115")},
	{CategoryGeneral, codeSet("3505", "3510")},
	{CategoryFinancial, codeSet("4101", "4102", "4110")},
	{CategoryOtherOps, codeSet("3810")},
	{CategorySales, codeSet("3605", "3610")},
	{CategoryAssets, codeSet("5101", "5105")},
}

// categoryRange faixa numérica do plano de itens de despesa do ERP.
type categoryRange struct {
	min, max int
	category ExpenseCategory
}

// categoryRanges fallback por faixa de código, usado quando nenhuma
// exceção captura o código. Faixas do plano de contas do ERP legado.
var categoryRanges = []categoryRange{
	{1000, 1999, CategoryCOGS},
	{2000, 2299, CategoryPayroll},
	{2300, 2399, CategoryTaxes},
	{3300, 3399, CategoryRent},
	{3400, 3599, CategoryGeneral},
	{3600, 3699, CategorySales},
	{3700, 3999, CategoryOtherOps},
	{4000, 4499, CategoryFinancial},
	{5000, 5999, CategoryAssets},
}

// ClassifyExpense atribui exatamente uma categoria a um código de item de
// despesa. Precedência: (1) tabelas de exceção, na ordem declarada;
// (2) faixas numéricas; (3) NAO_CLASSIFICADA. Um registro nunca é
// descartado por falta de classificação — os totais precisam fechar.
func ClassifyExpense(itemCode string) ExpenseCategory {
	for _, exc := range categoryExceptions {
		if _, ok := exc.codes[itemCode]; ok {
			return exc.category
		}
	}
	if n, err := strconv.Atoi(itemCode); err == nil {
		for _, r := range categoryRanges {
			if n >= r.min && n <= r.max {
				return r.category
			}
		}
	}
	return CategoryUnclassified
}

func codeSet(codes ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}
