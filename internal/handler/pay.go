package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/model"
	"github.com/privacydash/privacydash/internal/payment"
	"github.com/privacydash/privacydash/internal/paylink"
	"github.com/privacydash/privacydash/internal/store"
)

// PayHandler serves the payer-side surface: the public payment page and
// payment execution through the local wallet.
type PayHandler struct {
	requests *store.RequestStore
	executor *payment.Executor
	wallet   payment.Wallet // nil when no local signing wallet is configured
	baseURL  string
	log      *zap.Logger
}

// NewPayHandler wires the payer surface. wallet may be nil; paying then
// returns an error while the payment page keeps working.
func NewPayHandler(requests *store.RequestStore, executor *payment.Executor, wallet payment.Wallet, baseURL string, log *zap.Logger) *PayHandler {
	return &PayHandler{
		requests: requests,
		executor: executor,
		wallet:   wallet,
		baseURL:  baseURL,
		log:      log,
	}
}

// View handles GET /pay/{id}
// @Summary      Public payment page data
// @Description  Public fields only; the encrypted invoice is never exposed here
// @Tags         pay
// @Produce      json
// @Param        id  path  string  true  "request id"
// @Success      200  {object}  model.PaymentPage
// @Failure      404  {object}  model.ErrorResponse
// @Router       /pay/{id} [get]
func (h *PayHandler) View(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := h.requests.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "request invalid or expired"})
		return
	}

	payURL := paylink.PaymentURL(req)
	qr, err := paylink.QRCodePNG(payURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PaymentPage{
		ID:         req.ID,
		Reference:  req.Reference,
		Amount:     req.Amount,
		TokenMint:  req.TokenMint,
		Label:      req.Label,
		Icon:       req.Icon,
		Status:     req.Status,
		Creator:    req.Creator,
		ExpiresAt:  req.ExpiresAt,
		Expired:    req.Expired(timeNow()),
		PageURL:    paylink.PagePath(h.baseURL, req.ID),
		PaymentURL: payURL,
		QRCode:     qr,
	})
}

// Pay handles POST /pay/{id}
// @Summary      Pay a request with the local wallet
// @Description  Submits a native transfer and awaits confirmation. A 504 means the outcome is unknown: verify on the ledger and reconcile, the transfer is not necessarily lost.
// @Tags         pay
// @Produce      json
// @Param        id  path  string  true  "request id"
// @Success      200  {object}  model.PayResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse  "not payable"
// @Failure      502  {object}  model.ErrorResponse  "submission failed, safe to retry"
// @Failure      504  {object}  model.ErrorResponse  "status unknown, verify manually"
// @Router       /pay/{id} [post]
func (h *PayHandler) Pay(w http.ResponseWriter, r *http.Request) {
	if h.wallet == nil {
		writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{
			Error: "no local signing wallet configured",
		})
		return
	}

	id := chi.URLParam(r, "id")
	req, ok := h.requests.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "request not found"})
		return
	}

	resp, err := h.executor.Pay(r.Context(), req, h.wallet)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reconcile handles POST /pay/{id}/reconcile
// @Summary      Manually reconcile an unknown payment outcome
// @Description  Re-checks the signature on the ledger and marks the request paid if confirmed
// @Tags         pay
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "request id"
// @Param        request  body  model.ReconcileRequest  true  "signature and payer"
// @Success      204  "no content"
// @Failure      400  {object}  model.ErrorResponse
// @Router       /pay/{id}/reconcile [post]
func (h *PayHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body model.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if body.Signature == "" || body.Payer == "" {
		writeBadRequest(w, "signature and payer are required")
		return
	}

	if err := h.executor.Reconcile(r.Context(), id, body.Signature, body.Payer); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
