package dre

import (
	"strings"
	"time"

	"github.com/gestaoviva/dre-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PayableGroup um fato econômico do contas a pagar após a mescla dos rateios.
//
// Record é o representante do grupo com os conflitos de situação, previsão e
// datas já resolvidos. AllocationTotal soma os valores de rateio DISTINTOS
// observados — linhas duplicadas pelo join de rateio contribuem uma vez só.
type PayableGroup struct {
	Record          entity.PayableRecord
	Count           int
	AllocationTotal decimal.Decimal

	allocations map[string]decimal.Decimal
}

// MergePayables deduplica as linhas cruas do razão: linhas que diferem apenas
// no valor de rateio são o mesmo título repartido entre centros de custo e
// viram um único grupo.
func MergePayables(records []entity.PayableRecord) []PayableGroup {
	groups := make([]PayableGroup, 0, len(records))
	for _, r := range records {
		groups = append(groups, newGroup(r))
	}
	return MergeGroups(groups)
}

// MergeGroups mescla grupos que compartilham a mesma chave composta.
// Idempotente: mesclar um resultado já mesclado não muda nada.
func MergeGroups(groups []PayableGroup) []PayableGroup {
	index := make(map[string]int)
	merged := make([]PayableGroup, 0, len(groups))

	for _, g := range groups {
		key := groupKey(g.Record)
		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, cloneGroup(g))
			continue
		}
		merged[i] = combine(merged[i], g)
	}
	return merged
}

// FilterSettled descarta grupos cancelados ou provisórios: só títulos com
// situação normal e previsão realizada entram numa DRE fechada.
func FilterSettled(groups []PayableGroup) []PayableGroup {
	kept := make([]PayableGroup, 0, len(groups))
	for _, g := range groups {
		if g.Record.Situation == entity.SituationNormal && entity.IsForecastReal(g.Record.Forecast) {
			kept = append(kept, g)
		}
	}
	return kept
}

// groupKey chave composta do título: todos os campos de identificação e
// valores de face, exceto o valor de rateio. Situação, previsão e datas ficam
// fora da chave e são resolvidas por regra de conflito na mescla.
func groupKey(r entity.PayableRecord) string {
	return strings.Join([]string{
		r.Company,
		r.SupplierCode,
		r.SupplierName,
		r.ItemCode,
		r.ItemName,
		r.DuplicateNo,
		r.InstallmentNo,
		r.FaceValue.String(),
		r.Interest.String(),
		r.Surcharge.String(),
		r.Discount.String(),
		r.Paid.String(),
	}, "|")
}

func newGroup(r entity.PayableRecord) PayableGroup {
	return PayableGroup{
		Record:          r,
		Count:           1,
		AllocationTotal: r.Allocation,
		allocations:     map[string]decimal.Decimal{r.Allocation.String(): r.Allocation},
	}
}

func cloneGroup(g PayableGroup) PayableGroup {
	allocations := make(map[string]decimal.Decimal, len(g.allocations))
	for k, v := range g.allocations {
		allocations[k] = v
	}
	out := g
	out.allocations = allocations
	return out
}

// combine funde b em a: soma contagens, une os rateios distintos e resolve
// os conflitos de situação, previsão e datas.
func combine(a, b PayableGroup) PayableGroup {
	a.Count += b.Count
	for k, v := range b.allocations {
		if _, seen := a.allocations[k]; !seen {
			a.allocations[k] = v
			a.AllocationTotal = a.AllocationTotal.Add(v)
		}
	}
	a.Record.Situation = resolveSituation(a.Record.Situation, b.Record.Situation)
	a.Record.Forecast = resolveForecast(a.Record.Forecast, b.Record.Forecast)
	a.Record.EmissionDate = latest(a.Record.EmissionDate, b.Record.EmissionDate)
	a.Record.DueDate = latest(a.Record.DueDate, b.Record.DueDate)
	a.Record.EntryDate = latest(a.Record.EntryDate, b.Record.EntryDate)
	a.Record.SettlementDate = latest(a.Record.SettlementDate, b.Record.SettlementDate)
	return a
}

// resolveSituation cancelado vence: basta uma variante C para o grupo ser C.
func resolveSituation(a, b string) string {
	if a == entity.SituationCancelled || b == entity.SituationCancelled {
		return entity.SituationCancelled
	}
	return entity.SituationNormal
}

// resolveForecast prioridade realizado > provisório > cancelado.
func resolveForecast(a, b string) string {
	if entity.IsForecastReal(a) || entity.IsForecastReal(b) {
		return entity.ForecastReal
	}
	if a == entity.ForecastProvisional || b == entity.ForecastProvisional {
		return entity.ForecastProvisional
	}
	return entity.ForecastCancelled
}

// latest a data mais recente observada no grupo.
func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
