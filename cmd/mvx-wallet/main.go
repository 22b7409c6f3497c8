// mvx-wallet generates MultiversX wallets, loads them from keys or files and
// signs transfers offline. Nothing is ever broadcast.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var pe *prefixedError
		if errors.As(err, &pe) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", pe.prefix, pe.err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// prefixedError replaces the default "Error" prefix printed by main.
type prefixedError struct {
	prefix string
	err    error
}

func (e *prefixedError) Error() string { return e.prefix + ": " + e.err.Error() }
func (e *prefixedError) Unwrap() error { return e.err }
