package dre

import (
	"context"
	"fmt"
	"time"

	"github.com/gestaoviva/dre-api/internal/domain"
	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/gestaoviva/dre-api/internal/domain/repository"
)

// StatementUseCase orquestra o pipeline completo da DRE para um período.
//
// Os quatro canais rodam em paralelo (cada um é dono do seu acumulador, sem
// estado compartilhado) e o contas a pagar roda junto. Cada estágio produz um
// resultado imutável consumido pelo seguinte; nenhum estágio lê campo mutável
// de outro. Falha de feed de vendas, de resolução de impostos ou do contas a
// pagar aborta a montagem inteira: uma DRE parcial nunca é apresentada como
// completa.
type StatementUseCase struct {
	salesRepo    repository.SalesRepository
	taxRepo      repository.TaxLedgerRepository
	payablesRepo repository.PayablesRepository
	lookupRepo   repository.LookupRepository
	channels     []ChannelSpec
	onProgress   ProgressFunc
}

// NewStatementUseCase constrói o caso de uso. channels define o escopo de
// empresas de cada canal (vem da configuração); onProgress pode ser nil.
func NewStatementUseCase(
	salesRepo repository.SalesRepository,
	taxRepo repository.TaxLedgerRepository,
	payablesRepo repository.PayablesRepository,
	lookupRepo repository.LookupRepository,
	channels []ChannelSpec,
	onProgress ProgressFunc,
) *StatementUseCase {
	return &StatementUseCase{
		salesRepo:    salesRepo,
		taxRepo:      taxRepo,
		payablesRepo: payablesRepo,
		lookupRepo:   lookupRepo,
		channels:     channels,
		onProgress:   onProgress,
	}
}

// Build monta a DRE do período [start, end].
func (uc *StatementUseCase) Build(ctx context.Context, start, end time.Time) (*entity.Statement, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidPeriod
	}

	type channelResult struct {
		figures ChannelFigures
		err     error
	}
	type payablesResult struct {
		operating []entity.StatementNode
		financial []entity.StatementNode
		err       error
	}

	channelCh := make(chan channelResult, len(uc.channels))
	payablesCh := make(chan payablesResult, 1)

	collector := NewChannelCollector(uc.salesRepo)
	resolver := NewTaxResolver(uc.taxRepo, uc.onProgress)

	for _, spec := range uc.channels {
		go func(spec ChannelSpec) {
			totals, txIDs, err := collector.Collect(ctx, spec, start, end)
			if err != nil {
				channelCh <- channelResult{err: err}
				return
			}
			taxes, err := resolver.Resolve(ctx, txIDs)
			if err != nil {
				channelCh <- channelResult{err: fmt.Errorf("canal %s: %w", spec.Channel, err)}
				return
			}
			channelCh <- channelResult{figures: ChannelFigures{
				Channel: spec.Channel,
				Totals:  totals,
				Taxes:   taxes.Totals,
			}}
		}(spec)
	}

	go func() {
		records, err := uc.payablesRepo.ListEmitted(ctx, start, end, uc.allCompanies())
		if err != nil {
			payablesCh <- payablesResult{err: fmt.Errorf("contas a pagar: %w", err)}
			return
		}
		groups := FilterSettled(MergePayables(records))
		operating, financial := NewTreeBuilder(uc.lookupRepo).Build(ctx, groups)
		payablesCh <- payablesResult{operating: operating, financial: financial}
	}()

	byChannel := make(map[entity.Channel]ChannelFigures, len(uc.channels))
	var firstErr error
	for range uc.channels {
		res := <-channelCh
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		byChannel[res.figures.Channel] = res.figures
	}
	payables := <-payablesCh

	if firstErr != nil {
		return nil, fmt.Errorf("dre: %w", firstErr)
	}
	if payables.err != nil {
		return nil, fmt.Errorf("dre: %w", payables.err)
	}

	// Preserva a ordem canônica de apresentação dos canais.
	figures := make([]ChannelFigures, 0, len(uc.channels))
	for _, spec := range uc.channels {
		figures = append(figures, byChannel[spec.Channel])
	}

	return AssembleStatement(StatementInput{
		PeriodStart: start,
		PeriodEnd:   end,
		Channels:    figures,
		Operating:   payables.operating,
		Financial:   payables.financial,
	}), nil
}

// allCompanies união das empresas de todos os canais, sem repetição, para o
// escopo do contas a pagar (que é consultado uma vez para o grupo inteiro).
func (uc *StatementUseCase) allCompanies() []string {
	seen := make(map[string]struct{})
	var companies []string
	for _, spec := range uc.channels {
		for _, c := range spec.Companies {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				companies = append(companies, c)
			}
		}
	}
	return companies
}
