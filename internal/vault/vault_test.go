package vault

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacydash/privacydash/internal/errs"
	"github.com/privacydash/privacydash/internal/model"
	"github.com/privacydash/privacydash/internal/storage"
)

func newFileBackedManager(t *testing.T) *KeyManager {
	t.Helper()
	slot, err := storage.NewFileSlot(filepath.Join(t.TempDir(), "master_key.json"))
	require.NoError(t, err)
	return NewKeyManager(slot)
}

func TestGetOrCreateKey_LazyAndStable(t *testing.T) {
	km := newFileBackedManager(t)

	k1, err := km.GetOrCreateKey()
	require.NoError(t, err)
	require.Len(t, k1, 32)

	k2, err := km.GetOrCreateKey()
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestGetOrCreateKey_SurvivesReload(t *testing.T) {
	dir := t.TempDir()
	slot, err := storage.NewFileSlot(filepath.Join(dir, "master_key.json"))
	require.NoError(t, err)

	k1, err := NewKeyManager(slot).GetOrCreateKey()
	require.NoError(t, err)

	// Fresh manager over the same slot sees the same key
	slot2, err := storage.NewFileSlot(filepath.Join(dir, "master_key.json"))
	require.NoError(t, err)
	k2, err := NewKeyManager(slot2).GetOrCreateKey()
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestExportKey_BeforeInit(t *testing.T) {
	km := newFileBackedManager(t)
	_, err := km.ExportKey()
	require.ErrorIs(t, err, errs.ErrNoKeyInitialized)
}

func TestExportImportRoundTrip(t *testing.T) {
	km := newFileBackedManager(t)
	k1, err := km.GetOrCreateKey()
	require.NoError(t, err)

	blob, err := km.ExportKey()
	require.NoError(t, err)

	var ek exportedKey
	require.NoError(t, json.Unmarshal(blob, &ek))
	assert.Equal(t, keyAlg, ek.Alg)
	assert.Equal(t, k1, ek.Key)

	// Import into a fresh installation restores decryption capability
	other := NewKeyManager(&storage.MemSlot{})
	require.NoError(t, other.ImportKey(blob))
	k2, err := other.GetOrCreateKey()
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestGetOrCreateKey_HandleSurvivesReset(t *testing.T) {
	km := newFileBackedManager(t)

	k, err := km.GetOrCreateKey()
	require.NoError(t, err)
	held := append([]byte(nil), k...)

	// Wiping the manager's buffer must not reach bytes already handed out
	require.NoError(t, km.ResetKey())
	assert.Equal(t, held, k)
	assert.NotEqual(t, make([]byte, len(k)), k)
}

func TestGetOrCreateKey_HandleSurvivesImport(t *testing.T) {
	km := newFileBackedManager(t)

	k, err := km.GetOrCreateKey()
	require.NoError(t, err)
	held := append([]byte(nil), k...)

	other := NewKeyManager(&storage.MemSlot{})
	_, err = other.GetOrCreateKey()
	require.NoError(t, err)
	blob, err := other.ExportKey()
	require.NoError(t, err)

	require.NoError(t, km.ImportKey(blob))
	assert.Equal(t, held, k)
}

func TestImportKey_RejectsGarbage(t *testing.T) {
	km := NewKeyManager(&storage.MemSlot{})
	require.Error(t, km.ImportKey([]byte("not json")))
	require.Error(t, km.ImportKey([]byte(`{"alg":"ROT13","key":"AAAA"}`)))
}

func TestResetKey_Idempotent(t *testing.T) {
	km := newFileBackedManager(t)
	require.NoError(t, km.ResetKey()) // no key yet: no-op

	_, err := km.GetOrCreateKey()
	require.NoError(t, err)
	require.NoError(t, km.ResetKey())
	require.NoError(t, km.ResetKey())

	_, err = km.ExportKey()
	require.ErrorIs(t, err, errs.ErrNoKeyInitialized)
}

func TestKeyStoreUnavailable(t *testing.T) {
	km := NewKeyManager(&storage.MemSlot{FailWrites: true})
	_, err := km.GetOrCreateKey()
	require.ErrorIs(t, err, errs.ErrKeyStoreUnavailable)
}

func testInvoice() model.PrivateInvoiceData {
	return model.PrivateInvoiceData{
		Title: "T",
		Items: []model.LineItem{{Description: "x", Amount: "1"}},
		Notes: "n",
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	c := NewCipher(newFileBackedManager(t))

	blob, err := c.Encrypt(testInvoice())
	require.NoError(t, err)

	var out model.PrivateInvoiceData
	require.NoError(t, c.Decrypt(blob, &out))
	assert.Equal(t, testInvoice(), out)
}

func TestCipher_EmptyPayload(t *testing.T) {
	c := NewCipher(newFileBackedManager(t))

	blob, err := c.Encrypt(model.PrivateInvoiceData{})
	require.NoError(t, err)

	var out model.PrivateInvoiceData
	require.NoError(t, c.Decrypt(blob, &out))
	assert.Equal(t, model.PrivateInvoiceData{}, out)
}

func TestCipher_NonceUniqueness(t *testing.T) {
	c := NewCipher(newFileBackedManager(t))

	b1, err := c.Encrypt(testInvoice())
	require.NoError(t, err)
	b2, err := c.Encrypt(testInvoice())
	require.NoError(t, err)
	assert.NotEqual(t, b1, b2)

	var o1, o2 model.PrivateInvoiceData
	require.NoError(t, c.Decrypt(b1, &o1))
	require.NoError(t, c.Decrypt(b2, &o2))
	assert.Equal(t, o1, o2)
}

func TestCipher_DecryptAfterReset(t *testing.T) {
	km := newFileBackedManager(t)
	c := NewCipher(km)

	blob, err := c.Encrypt(testInvoice())
	require.NoError(t, err)

	require.NoError(t, km.ResetKey())

	// A fresh key is provisioned transparently; the old blob is unreadable
	var out model.PrivateInvoiceData
	err = c.Decrypt(blob, &out)
	require.ErrorIs(t, err, errs.ErrDecryptionFailed)
}

func TestCipher_CorruptedBlob(t *testing.T) {
	c := NewCipher(newFileBackedManager(t))

	blob, err := c.Encrypt(testInvoice())
	require.NoError(t, err)

	var out model.PrivateInvoiceData
	require.ErrorIs(t, c.Decrypt("@@not-base64@@", &out), errs.ErrDecryptionFailed)
	require.ErrorIs(t, c.Decrypt("AAAA", &out), errs.ErrDecryptionFailed)
	require.ErrorIs(t, c.Decrypt(blob[:len(blob)-8]+"AAAAAAA=", &out), errs.ErrDecryptionFailed)
}
