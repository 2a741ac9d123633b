package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	dbm "github.com/tendermint/tm-db"

	"github.com/plural-labs/escrow-gateway/gateway"
	"github.com/plural-labs/escrow-gateway/server"
)

var rootCmd = &cobra.Command{
	Use:   "escrow-gateway [config.toml]",
	Short: "Serve read-only queries over an escrow gateway database",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("gateway exited")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := gateway.LoadConfig(args[0])
	if err != nil {
		return err
	}

	db, err := dbm.NewDB("gateway", dbm.GoLevelDBBackend, cfg.DBDir)
	if err != nil {
		return err
	}
	defer db.Close()

	// Query-only instance: the mutating entrypoints belong to the host
	// environment embedding the gateway, not to this process.
	gw, err := gateway.New(cfg, db, nil)
	if err != nil {
		return err
	}
	return server.New(gw).ListenAndServe(cfg.QueryAddr)
}
