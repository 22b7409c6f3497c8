package main

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/mvx-wallet/config"
	"github.com/Klingon-tech/mvx-wallet/internal/gateway"
	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/internal/signer"
	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
	"github.com/Klingon-tech/mvx-wallet/pkg/tx"
)

type signFlags struct {
	nonce    uint64
	gasLimit uint64
	data     string
	options  uint32
	guardian string
	sender   string
	receiver string
	egld     bool
	out      string
	online   bool
}

func (a *app) signCmd() *cobra.Command {
	var f signFlags
	cmd := &cobra.Command{
		Use:   "sign <wallet.json> <receiver> <amount>",
		Short: "Sign an EGLD transfer and save it to a file",
		Long: `Sign an EGLD transfer with the key of a wallet file.

The amount is in the smallest denomination unless --egld is given.
The signed transaction is written to disk and is never broadcast.`,
		Example: `  mvx-wallet sign wallet_data/wallet.json erd1spyavw0956vq68xj8y4tenjpq2wd5a9p2c6j8gsz7ztyrnpxrruqzu66jx 1000000000000000000
  mvx-wallet sign wallet.json erd1... 0.5 --egld --nonce 7 --data "hello"
  mvx-wallet sign wallet.json erd1... 1 --egld --online`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSign(cmd, args, &f)
		},
	}

	fl := cmd.Flags()
	fl.Uint64Var(&f.nonce, "nonce", 0, "account nonce")
	fl.Uint64Var(&f.gasLimit, "gas-limit", config.DefaultGasLimit, "gas limit; with --data and no explicit value, the move-balance cost of the data")
	fl.Uint64("gas-price", 0, "gas price (default from network config)")
	fl.String("chain-id", "", "chain ID (default from network config)")
	fl.Uint32("version", 0, "transaction version (default from network config)")
	fl.StringVar(&f.data, "data", "", "transaction data")
	fl.Uint32Var(&f.options, "options", 0, "transaction options (requires version 2)")
	fl.StringVar(&f.guardian, "guardian", "", "guardian address")
	fl.StringVar(&f.sender, "sender-username", "", "sender username")
	fl.StringVar(&f.receiver, "receiver-username", "", "receiver username")
	fl.BoolVar(&f.egld, "egld", false, "amount is in EGLD (up to 18 decimals)")
	fl.StringVarP(&f.out, "out", "o", "", "output file (default <tx_dir>/signed_transaction.json)")
	fl.String("proxy", "", "gateway URL used to fetch nonce and network config")
	fl.BoolVar(&f.online, "online", false, "fetch nonce and network config from the network's public gateway")
	a.bind("gas_price", fl.Lookup("gas-price"))
	a.bind("chain_id", fl.Lookup("chain-id"))
	a.bind("tx_version", fl.Lookup("version"))
	a.bind("proxy", fl.Lookup("proxy"))
	return cmd
}

func (a *app) runSign(cmd *cobra.Command, args []string, f *signFlags) error {
	wl, err := wallet.LoadFile(args[0])
	if err != nil {
		return err
	}
	value, err := parseAmount(args[2], f.egld)
	if err != nil {
		return err
	}

	req := signer.TransferRequest{
		Receiver: args[1],
		Value:    value,
		Nonce:    f.nonce,
		GasPrice: a.cfg.GasPrice,
		GasLimit: a.cfg.GasLimit,
		ChainID:  a.cfg.ChainID,
		Version:  a.cfg.TxVersion,
		Options:  f.options,
		Data:     []byte(f.data),
		Guardian: f.guardian,

		SenderUsername:   f.sender,
		ReceiverUsername: f.receiver,
	}
	switch {
	case cmd.Flags().Changed("gas-limit"):
		req.GasLimit = f.gasLimit
	case len(req.Data) > 0 && req.GasLimit == config.DefaultGasLimit:
		// Charge for the data: SignTransfer computes the move-balance cost.
		req.GasLimit = 0
	}

	if proxy := a.gatewayURL(f.online); proxy != "" {
		sender, err := wl.AccountAddress()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
		defer cancel()
		client := gateway.NewWithTimeout(proxy, a.cfg.Timeout)
		if err := signer.ApplyNetwork(ctx, client, sender, &req); err != nil {
			return fmt.Errorf("query gateway %s: %w", proxy, err)
		}
		if cmd.Flags().Changed("nonce") {
			req.Nonce = f.nonce
		}
	}

	signed, err := signer.SignTransfer(wl, req)
	if err != nil {
		return err
	}

	path := f.out
	if path == "" {
		path = a.cfg.SignedTxFile()
	}
	if err := signer.WriteSigned(path, signed.Tx); err != nil {
		return err
	}
	logger := klog.WithChainID(signed.Tx.ChainID)
	logger.Info().
		Str("hash", signed.Hash.String()).
		Str("path", path).
		Msg("signed transaction saved")

	printSigned(cmd.OutOrStdout(), signed)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTransaction saved to %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Note: the transaction was not broadcast to the network.")
	return nil
}

// gatewayURL returns the gateway to query, or "" to stay offline.
func (a *app) gatewayURL(online bool) string {
	if a.cfg.Proxy != "" {
		return a.cfg.Proxy
	}
	if online {
		return config.GatewayURL(a.cfg.Network)
	}
	return ""
}

func parseAmount(s string, egld bool) (*big.Int, error) {
	if egld {
		return tx.ParseEGLD(s)
	}
	return tx.ParseValue(s)
}

func printSigned(w io.Writer, s *signer.Signed) {
	t := s.Tx
	fmt.Fprintln(w, "\nSigned Transaction:")
	fmt.Fprintf(w, "Sender: %s\n", t.Sender)
	fmt.Fprintf(w, "Receiver: %s\n", t.Receiver)
	fmt.Fprintf(w, "Amount: %s (%s EGLD)\n", t.Value, tx.FormatEGLD(t.Value))
	fmt.Fprintf(w, "Nonce: %d\n", t.Nonce)
	fmt.Fprintf(w, "Gas: %d at %d\n", t.GasLimit, t.GasPrice)
	fmt.Fprintf(w, "Fee: %s (%s EGLD)\n", s.Fee, tx.FormatEGLD(s.Fee))
	fmt.Fprintf(w, "Hash: %s\n", s.Hash)
	fmt.Fprintf(w, "Signature: %x\n", t.Signature)
}
