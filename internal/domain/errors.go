package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrInvalidPeriod = errors.New("período inválido")
	ErrNoCompanies   = errors.New("nenhuma empresa no escopo da consulta")
	ErrFetchFailed   = errors.New("falha ao consultar colaborador externo")
	ErrTaxResolution = errors.New("falha na resolução de impostos")
	ErrPayablesFetch = errors.New("falha ao consultar contas a pagar")
	ErrBuildAborted  = errors.New("montagem da DRE abortada")
	ErrInvalidInput  = errors.New("entrada inválida")
)
