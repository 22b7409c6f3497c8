package main

import (
	"fmt"

	"github.com/spf13/cobra"

	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/internal/signer"
	"github.com/Klingon-tech/mvx-wallet/pkg/tx"
)

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [signed_transaction.json]",
		Short: "Check the structure and signature of a signed transaction file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.SignedTxFile()
			if len(args) == 1 {
				path = args[0]
			}

			t, err := signer.ReadSigned(path)
			if err != nil {
				return err
			}
			if err := t.Validate(); err != nil {
				return fmt.Errorf("invalid transaction: %w", err)
			}
			if err := t.VerifySignature(); err != nil {
				return err
			}
			fee, err := tx.ComputeFee(t)
			if err != nil {
				return err
			}
			klog.Tx.Debug().Str("path", path).Msg("signature verified")

			printSigned(cmd.OutOrStdout(), &signer.Signed{Tx: t, Hash: t.Hash(), Fee: fee})
			fmt.Fprintln(cmd.OutOrStdout(), "\nSignature is valid.")
			return nil
		},
	}
}
