// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Storage and vault sentinels.
var (
	// ErrKeyStoreUnavailable indicates the key persistence medium cannot be
	// read or written. Fatal for any encrypt/decrypt attempt.
	ErrKeyStoreUnavailable = errors.New("key store unavailable")

	// ErrNoKeyInitialized indicates an export was requested before any key
	// was ever created.
	ErrNoKeyInitialized = errors.New("no key initialized")

	// ErrDecryptionFailed indicates a ciphertext is unreadable with the
	// current key (wrong key, corrupted blob, or tag mismatch).
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrStoreUnavailable indicates a persistence read/write failure on a
	// collection slot.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Payment sentinels.
var (
	// ErrRequestNotPayable indicates the request is not in PENDING status.
	ErrRequestNotPayable = errors.New("request not payable")

	// ErrUserRejected indicates the wallet declined to sign or send.
	ErrUserRejected = errors.New("user rejected")

	// ErrSubmissionFailed indicates the network rejected the transaction
	// before it was accepted. Safe to retry.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrConfirmationUnknown indicates confirmation timed out or the ledger
	// could not be reached: the transfer may or may not have landed. The
	// local record is left untouched; verify manually and reconcile.
	ErrConfirmationUnknown = errors.New("confirmation outcome unknown")
)
