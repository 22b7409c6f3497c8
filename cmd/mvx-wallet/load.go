package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
)

func (a *app) loadCmd() *cobra.Command {
	var (
		file      string
		pemFile   string
		keyFile   string
		fromWords bool
		index     uint32
	)
	cmd := &cobra.Command{
		Use:   "load [private-key-hex]",
		Short: "Load a wallet from a private key, wallet file, PEM, keystore or mnemonic",
		Example: `  mvx-wallet load 413f42575f7f26fad3317a778771212fdb80245850981e48b58a4f25e344e8f9
  mvx-wallet load --file wallet_data/wallet.json
  mvx-wallet load --pem alice.pem --index 1
  MVXW_PASSWORD=secret mvx-wallet load --keystore alice.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n := countSet(len(args) == 1, file != "", pemFile != "", keyFile != "", fromWords); n != 1 {
				return fmt.Errorf("give exactly one of: a private key, --file, --pem, --keystore, --mnemonic")
			}

			wl, err := a.loadWallet(args, file, pemFile, keyFile, fromWords, index)
			if err != nil {
				return &prefixedError{prefix: "Error loading wallet", err: err}
			}
			printWallet(cmd.OutOrStdout(), wl)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "wallet JSON file")
	cmd.Flags().StringVar(&pemFile, "pem", "", "PEM key file")
	cmd.Flags().StringVar(&keyFile, "keystore", "", "JSON keystore file (password from MVXW_PASSWORD or prompt)")
	cmd.Flags().BoolVar(&fromWords, "mnemonic", false, "derive from a mnemonic (from MVXW_MNEMONIC or prompt)")
	cmd.Flags().Uint32Var(&index, "index", 0, "address index (mnemonic) or key position (PEM)")
	return cmd
}

func (a *app) loadWallet(args []string, file, pemFile, keyFile string, fromWords bool, index uint32) (*wallet.Wallet, error) {
	switch {
	case len(args) == 1:
		return wallet.FromPrivateKeyHex(args[0])
	case file != "":
		return wallet.LoadFile(file)
	case pemFile != "":
		return wallet.LoadPEM(pemFile, int(index))
	case keyFile != "":
		pw, err := password(false)
		if err != nil {
			return nil, err
		}
		return wallet.LoadKeystore(keyFile, pw, index)
	default:
		phrase, err := mnemonic()
		if err != nil {
			return nil, err
		}
		return wallet.FromMnemonic(phrase, index)
	}
}
