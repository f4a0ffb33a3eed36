// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import "net/http"

// Kind names a class of rejection
type Kind string

const (
	KindMethodNotAllowed         Kind = "method_not_allowed"
	KindMalformedInput           Kind = "malformed_input"
	KindInvalidEnum              Kind = "invalid_enum"
	KindInvalidUnit              Kind = "invalid_unit"
	KindMissingDates             Kind = "missing_dates"
	KindInvalidDateFormat        Kind = "invalid_date_format"
	KindFutureDateNotAllowed     Kind = "future_date_not_allowed"
	KindDecisionBeforeProtocol   Kind = "decision_before_protocol"
	KindMissingVerificationToken Kind = "missing_verification_token"
	KindVerificationFailed       Kind = "verification_failed"
	KindVerificationUnavailable  Kind = "verification_unavailable"
	KindVerifierUnconfigured     Kind = "verifier_unconfigured"
	KindStoreUnconfigured        Kind = "store_unconfigured"
	KindPersistenceError         Kind = "persistence_error"
)

// Error is a terminal pipeline outcome. Message is safe to show to the
// submitter; internal causes are logged, never placed here.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Internal reports whether the failure is on the server side
func (e *Error) Internal() bool {
	return e.Status >= http.StatusInternalServerError
}

const internalMessage = "Erro interno do servidor"

var (
	ErrMethodNotAllowed         = &Error{KindMethodNotAllowed, http.StatusMethodNotAllowed, "Método não permitido"}
	ErrMalformedInput           = &Error{KindMalformedInput, http.StatusBadRequest, "JSON inválido"}
	ErrInvalidEnum              = &Error{KindInvalidEnum, http.StatusBadRequest, "Tipo de processo ou resultado inválido"}
	ErrInvalidUnit              = &Error{KindInvalidUnit, http.StatusBadRequest, "OM inválida"}
	ErrMissingDates             = &Error{KindMissingDates, http.StatusBadRequest, "Datas são obrigatórias"}
	ErrInvalidDateFormat        = &Error{KindInvalidDateFormat, http.StatusBadRequest, "Formato de datas inválido"}
	ErrFutureDateNotAllowed     = &Error{KindFutureDateNotAllowed, http.StatusBadRequest, "Datas futuras não são permitidas"}
	ErrDecisionBeforeProtocol   = &Error{KindDecisionBeforeProtocol, http.StatusBadRequest, "A data de decisão deve ser maior ou igual à de protocolo"}
	ErrMissingVerificationToken = &Error{KindMissingVerificationToken, http.StatusBadRequest, "Captcha obrigatório"}
	ErrVerificationFailed       = &Error{KindVerificationFailed, http.StatusBadRequest, "Captcha inválido"}
	ErrVerificationUnavailable  = &Error{KindVerificationUnavailable, http.StatusBadRequest, "Falha ao validar captcha"}
	ErrVerificationUnreachable  = &Error{KindVerificationUnavailable, http.StatusBadRequest, "Erro ao validar captcha"}

	ErrVerifierUnconfigured = &Error{KindVerifierUnconfigured, http.StatusInternalServerError, internalMessage}
	ErrStoreUnconfigured    = &Error{KindStoreUnconfigured, http.StatusInternalServerError, internalMessage}
	ErrPersistence          = &Error{KindPersistenceError, http.StatusInternalServerError, "Não foi possível salvar o envio"}
)
