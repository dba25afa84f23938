package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Situação do título no contas a pagar.
const (
	SituationNormal    = "N"
	SituationCancelled = "C"
)

// Previsão (forecast) do título: realizado, provisório ou cancelado.
// "R" e "REAL" são codificações legadas equivalentes de "realizado".
const (
	ForecastReal        = "R"
	ForecastRealLegacy  = "REAL"
	ForecastProvisional = "P"
	ForecastCancelled   = "C"
)

// IsForecastReal aceita as duas codificações legadas de "realizado".
func IsForecastReal(forecast string) bool {
	return forecast == ForecastReal || forecast == ForecastRealLegacy
}

// PayableRecord uma linha crua do razão de contas a pagar.
//
// Um mesmo fato econômico (um título) pode aparecer em várias linhas,
// uma por rateio de centro de custo, diferindo apenas em Allocation.
// Essas linhas precisam ser mescladas antes da classificação.
type PayableRecord struct {
	Company        string // empresa emissora
	SupplierCode   string
	SupplierName   string
	ItemCode       string // código do item de despesa no plano do ERP
	ItemName       string // descrição crua do item de despesa
	DuplicateNo    string // número da duplicata
	InstallmentNo  string // parcela
	EmissionDate   time.Time
	DueDate        time.Time
	EntryDate      time.Time
	SettlementDate time.Time
	Situation      string // N ou C
	Forecast       string // R/REAL, P ou C
	FaceValue      decimal.Decimal
	Interest       decimal.Decimal
	Surcharge      decimal.Decimal
	Discount       decimal.Decimal
	Paid           decimal.Decimal
	Allocation     decimal.Decimal // valor rateado ao centro de custo desta linha
}
