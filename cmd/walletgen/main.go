// Command walletgen generates a new Solana keypair and writes it to an
// encrypted wallet file for use as the daemon's local payer wallet.
//
// Usage:
//
//	walletgen -out payer.wallet
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/privacydash/privacydash/internal/wallet"
)

func main() {
	out := flag.String("out", "payer.wallet", "output wallet file")
	flag.Parse()

	fmt.Fprint(os.Stderr, "Enter wallet passphrase: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read passphrase:", err)
		os.Exit(1)
	}
	if len(pass) == 0 {
		fmt.Fprintln(os.Stderr, "passphrase cannot be empty")
		os.Exit(1)
	}
	defer clear(pass)

	address, err := wallet.Generate(*out, pass)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to generate wallet:", err)
		os.Exit(1)
	}

	fmt.Println(address)
}
