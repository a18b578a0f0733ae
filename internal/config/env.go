package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the wallet passphrase is prompted at runtime and stored in memory -
// use GetWalletPassphraseBytes()
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	DataDir         string        `envconfig:"DATA_DIR" default:"./data"`
	WalletFilePath  string        `envconfig:"WALLET_FILE_PATH" default:""`
	SolanaRPCURL    string        `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	ConfirmTimeout  time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"90s"`
	ConfirmInterval time.Duration `envconfig:"CONFIRM_INTERVAL" default:"2s"`
	PublicBaseURL   string        `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetDataDir returns the directory holding the persisted collections and key slot
func GetDataDir() string {
	return Get().DataDir
}

// GetWalletFilePath returns path to the encrypted signing-keypair file, if configured
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetPublicBaseURL returns the base URL payment links are built against
func GetPublicBaseURL() string {
	return Get().PublicBaseURL
}

var passphraseBytes []byte

// PromptForPassphrase prompts the user for the wallet passphrase in the terminal.
// The passphrase is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests. Only needed
// when a local signing wallet file is configured.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter wallet passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	passphraseBytes = make([]byte, len(raw))
	copy(passphraseBytes, raw)
	clear(raw)
	return nil
}

// GetWalletPassphraseBytes returns the passphrase stored in memory (from PromptForPassphrase).
// Returns an error if the passphrase was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPassphraseBytes() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: call PromptForPassphrase at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}
