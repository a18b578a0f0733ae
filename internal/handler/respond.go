package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/model"
)

var timeNow = time.Now

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := ""

	switch {
	case errors.Is(err, errs.ErrKeyStoreUnavailable), errors.Is(err, errs.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
		code = "VAULT_UNAVAILABLE"
	case errors.Is(err, errs.ErrNoKeyInitialized):
		status = http.StatusNotFound
		code = "NO_KEY"
	case errors.Is(err, errs.ErrDecryptionFailed):
		status = http.StatusConflict
		code = "DECRYPTION_FAILED"
	case errors.Is(err, errs.ErrRequestNotPayable):
		status = http.StatusConflict
		code = "NOT_PAYABLE"
	case errors.Is(err, errs.ErrUserRejected):
		status = http.StatusBadRequest
		code = "USER_REJECTED"
	case errors.Is(err, errs.ErrSubmissionFailed):
		status = http.StatusBadGateway
		code = "SUBMISSION_FAILED"
	case errors.Is(err, errs.ErrConfirmationUnknown):
		// Not a definite failure: the transfer may have landed
		status = http.StatusGatewayTimeout
		code = "CONFIRMATION_UNKNOWN"
	}

	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: msg})
}
