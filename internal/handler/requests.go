// Package handler exposes the core operations over the local HTTP API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/model"
	"github.com/privacydash/privacydash/internal/store"
	"github.com/privacydash/privacydash/internal/vault"
)

// RequestHandler serves the merchant-side request operations.
type RequestHandler struct {
	requests *store.RequestStore
	cipher   *vault.Cipher
	log      *zap.Logger
}

// NewRequestHandler wires the request store and the vault cipher.
func NewRequestHandler(requests *store.RequestStore, cipher *vault.Cipher, log *zap.Logger) *RequestHandler {
	return &RequestHandler{requests: requests, cipher: cipher, log: log}
}

// Create handles POST /api/requests
// @Summary      Create payment request
// @Description  Encrypts the private invoice into the vault and stores a new PENDING request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        request  body  model.CreateRequestBody  true  "request fields"
// @Success      201  {object}  model.PaymentRequest
// @Failure      400  {object}  model.ErrorResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body model.CreateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if body.Creator == "" {
		writeBadRequest(w, "creator is required")
		return
	}

	ciphertext, err := h.cipher.Encrypt(body.Invoice)
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := h.requests.Create(model.CreateRequestParams{
		Amount:     body.Amount,
		TokenMint:  body.TokenMint,
		Label:      body.Label,
		Icon:       body.Icon,
		Ciphertext: ciphertext,
		ExpiresAt:  body.ExpiresAt,
	}, body.Creator)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

// List handles GET /api/requests
// @Summary      List payment requests
// @Description  Most-recently-created first, optionally filtered by creator
// @Tags         requests
// @Produce      json
// @Param        creator  query  string  false  "creator partition"
// @Success      200  {array}  model.PaymentRequest
// @Router       /api/requests [get]
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	creator := r.URL.Query().Get("creator")
	writeJSON(w, http.StatusOK, h.requests.ListAll(creator))
}

// Get handles GET /api/requests/{id}
// @Summary      Get one payment request
// @Tags         requests
// @Produce      json
// @Param        id  path  string  true  "request id"
// @Success      200  {object}  model.PaymentRequest
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := h.requests.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "request not found"})
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// Cancel handles POST /api/requests/{id}/cancel
// @Summary      Cancel a payment request
// @Description  Transitions the request to CANCELLED; cancelling an unknown id is a no-op
// @Tags         requests
// @Produce      json
// @Param        id  path  string  true  "request id"
// @Success      204  "no content"
// @Failure      503  {object}  model.ErrorResponse
// @Router       /api/requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.requests.Cancel(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Invoice handles GET /api/requests/{id}/invoice
// @Summary      Decrypt the private invoice of a request
// @Description  Only meaningful on the installation holding the master key
// @Tags         requests
// @Produce      json
// @Param        id  path  string  true  "request id"
// @Success      200  {object}  model.PrivateInvoiceData
// @Failure      404  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse  "unreadable with current key"
// @Router       /api/requests/{id}/invoice [get]
func (h *RequestHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := h.requests.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "request not found"})
		return
	}

	var invoice model.PrivateInvoiceData
	if err := h.cipher.Decrypt(req.Ciphertext, &invoice); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

// Stats handles GET /api/stats/{creator}
// @Summary      Aggregate statistics for one creator
// @Tags         requests
// @Produce      json
// @Param        creator  path  string  true  "creator address"
// @Success      200  {object}  model.Stats
// @Router       /api/stats/{creator} [get]
func (h *RequestHandler) Stats(w http.ResponseWriter, r *http.Request) {
	creator := chi.URLParam(r, "creator")
	stats, err := h.requests.Stats(creator)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
