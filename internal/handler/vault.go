package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/vault"
)

// maxKeyBlobSize bounds an imported key backup; real blobs are ~200 bytes.
const maxKeyBlobSize = 16 * 1024

// VaultHandler serves master-key management: backup export, restore and the
// irreversible reset.
type VaultHandler struct {
	keys *vault.KeyManager
	log  *zap.Logger
}

// NewVaultHandler wires the key manager.
func NewVaultHandler(keys *vault.KeyManager, log *zap.Logger) *VaultHandler {
	return &VaultHandler{keys: keys, log: log}
}

// Export handles GET /api/vault/key
// @Summary      Export the master key for backup
// @Description  Returns the persisted key material verbatim as a downloadable JSON blob
// @Tags         vault
// @Produce      json
// @Success      200  {object}  object
// @Failure      404  {object}  model.ErrorResponse  "no key initialized"
// @Router       /api/vault/key [get]
func (h *VaultHandler) Export(w http.ResponseWriter, r *http.Request) {
	blob, err := h.keys.ExportKey()
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Info("master key exported for backup")
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="privacy-dash-vault-key.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// Import handles POST /api/vault/key
// @Summary      Restore a master key from backup
// @Description  Replaces the current key; ciphertexts produced under the imported key become readable again
// @Tags         vault
// @Accept       json
// @Success      204  "no content"
// @Failure      400  {object}  model.ErrorResponse
// @Router       /api/vault/key [post]
func (h *VaultHandler) Import(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxKeyBlobSize))
	if err != nil {
		writeBadRequest(w, "failed to read body")
		return
	}

	if err := h.keys.ImportKey(blob); err != nil {
		if errors.Is(err, errs.ErrKeyStoreUnavailable) {
			writeError(w, err)
			return
		}
		writeBadRequest(w, err.Error())
		return
	}

	h.log.Info("master key restored from backup")
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles DELETE /api/vault/key
// @Summary      Reset the master key
// @Description  Irreversible: every previously encrypted invoice becomes permanently unreadable
// @Tags         vault
// @Success      204  "no content"
// @Failure      503  {object}  model.ErrorResponse
// @Router       /api/vault/key [delete]
func (h *VaultHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.keys.ResetKey(); err != nil {
		writeError(w, err)
		return
	}

	h.log.Warn("master key reset; prior ciphertexts are unrecoverable")
	w.WriteHeader(http.StatusNoContent)
}
