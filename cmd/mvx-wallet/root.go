package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Klingon-tech/mvx-wallet/config"
	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// app carries state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "mvx-wallet",
		Short:         "Generate, load and sign with MultiversX wallets",
		Long:          "mvx-wallet generates MultiversX wallets, loads them from keys or files and signs transfers offline.\nSigned transactions are written to disk and never broadcast.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./mvx-wallet.yaml)")
	pf.String("network", "", "network: mainnet, devnet or testnet (default devnet)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("log-json", false, "log as JSON")
	pf.String("log-file", "", "also write JSON logs to this file")
	a.bind("network", pf.Lookup("network"))
	a.bind("log.level", pf.Lookup("log-level"))
	a.bind("log.json", pf.Lookup("log-json"))
	a.bind("log.file", pf.Lookup("log-file"))

	root.AddCommand(
		a.generateCmd(),
		a.loadCmd(),
		a.signCmd(),
		a.verifyCmd(),
		a.signMessageCmd(),
		a.verifyMessageCmd(),
		a.keystoreCmd(),
		a.pemCmd(),
	)
	return root
}

// init loads configuration and applies process-wide settings.
func (a *app) init() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return err
	}
	types.SetAddressHRP(cfg.HRP)
	a.cfg = cfg

	klog.CLI.Debug().
		Str("network", string(cfg.Network)).
		Str("chain_id", cfg.ChainID).
		Str("config", a.v.ConfigFileUsed()).
		Msg("configuration loaded")
	return nil
}

// bind ties a flag to a viper key. It panics on a nil flag.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
