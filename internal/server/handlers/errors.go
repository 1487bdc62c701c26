package handlers

import (
	"errors"
	"net/http"

	"github.com/mamadbah2/livestock-pricing/internal/importer"
	"github.com/mamadbah2/livestock-pricing/internal/service/payload"
	"github.com/mamadbah2/livestock-pricing/internal/service/pricelist"
	"github.com/mamadbah2/livestock-pricing/pkg/clients/marketplace"
)

const (
	kindBadRequest  = "bad_request"
	kindValidation  = "validation"
	kindNotFound    = "not_found"
	kindUnavailable = "unavailable"
	kindUnknown     = "unknown"

	conflictHint = "a price list already exists for this client and date; resubmit with overwrite set to true to replace it"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error     string            `json:"error"`
	Kind      string            `json:"kind"`
	Retryable bool              `json:"retryable"`
	Fields    map[string]string `json:"fields,omitempty"`
	Hint      string            `json:"hint,omitempty"`
}

func describeError(err error) (int, errorResponse) {
	var verr *payload.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kindValidation, Fields: verr.Fields}
	}

	var apiErr *marketplace.APIError
	if errors.As(err, &apiErr) {
		body := errorResponse{
			Error:     err.Error(),
			Kind:      string(apiErr.Kind),
			Retryable: apiErr.Retryable(),
			Fields:    apiErr.Fields,
		}
		switch apiErr.Kind {
		case marketplace.KindConflict:
			body.Hint = conflictHint
			return http.StatusConflict, body
		case marketplace.KindValidation:
			return http.StatusUnprocessableEntity, body
		case marketplace.KindNotFound:
			return http.StatusNotFound, body
		case marketplace.KindNetwork:
			return http.StatusServiceUnavailable, body
		default:
			return http.StatusBadGateway, body
		}
	}

	switch {
	case errors.Is(err, pricelist.ErrSessionNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error(), Kind: kindNotFound, Hint: "import the spreadsheet again"}
	case errors.Is(err, importer.ErrNotApplicable):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kindValidation}
	case errors.Is(err, pricelist.ErrSheetNotConfigured):
		return http.StatusServiceUnavailable, errorResponse{Error: err.Error(), Kind: kindUnavailable}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: kindUnknown}
}
