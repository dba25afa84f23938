package dre

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// loanTerms termos que identificam parcelas de empréstimo/financiamento na
// descrição do item de despesa. Principal financiado não é despesa financeira
// operacional da DRE, então essas descrições saem da árvore financeira.
var loanTerms = []string{"EMPRESTIMO", "FINANCIAMENTO", "MUTUO"}

// normalizer remove acentos (NFD → descarta marcas → NFC).
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeDescription devolve a descrição em maiúsculas e sem acentos,
// para comparações estáveis entre as codificações do ERP legado
// ("Empréstimo", "EMPRESTIMO", "emprestimo").
func NormalizeDescription(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

// IsLoanDescription indica se a descrição referencia empréstimo ou
// financiamento (case- e accent-insensitive).
func IsLoanDescription(s string) bool {
	normalized := NormalizeDescription(s)
	for _, term := range loanTerms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
