package cmd

import (
	"context"
	"os"

	"github.com/alexliesenfeld/health"
	"github.com/cosmos/cosmos-sdk/client/grpc/tmservice"
	"github.com/rs/zerolog"
	rpchttpclient "github.com/tendermint/tendermint/rpc/client/http"
	dbm "github.com/tendermint/tm-db"
	"google.golang.org/grpc"

	"github.com/kava-labs/liquidation-queue/config"
	"github.com/kava-labs/liquidation-queue/keeper"
	"github.com/kava-labs/liquidation-queue/liquidation"
	"github.com/kava-labs/liquidation-queue/oracle"
	"github.com/kava-labs/liquidation-queue/store"
	"github.com/kava-labs/liquidation-queue/types"
)

// app bundles what every command needs
type app struct {
	config config.Config
	logger zerolog.Logger
	db     dbm.DB
	store  store.Store
}

// loadApp reads the environment, sets the bech32 prefix and opens the ledger
func loadApp() (app, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(&config.EnvLoader{}, logger)
	if err != nil {
		return app{}, err
	}
	logger = logger.Level(cfg.LogLevel)

	// sets a global cosmos sdk for bech32 prefix
	// required before decoding any address
	config.SetBech32Prefixes(cfg.Bech32Prefix)

	db, err := store.OpenDB(config.DBName, string(cfg.DBBackend), cfg.Home)
	if err != nil {
		return app{}, err
	}

	return app{
		config: cfg,
		logger: logger,
		db:     db,
		store:  store.NewStore(db),
	}, nil
}

func (a app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error().Err(err).Msg("failed to close database")
	}
}

// taxOracle queries the node at ORACLE_RPC_URL when set, the static rate otherwise.
// The returned checks report on the oracle's availability.
func (a app) taxOracle() (liquidation.TaxRateQuerier, []health.Check, error) {
	if a.config.OracleRpcUrl == "" {
		static, err := oracle.NewStaticTaxRate(a.config.TaxRate)
		if err != nil {
			return nil, nil, err
		}
		return static, nil, nil
	}

	http, err := rpchttpclient.New(a.config.OracleRpcUrl, "/websocket")
	if err != nil {
		return nil, nil, err
	}
	client := oracle.NewRpcTaxClient(http, types.ModuleCdc)

	checks := []health.Check{
		{
			Name: "tax oracle rpc",
			Check: func(ctx context.Context) error {
				return client.Ping(ctx)
			},
		},
	}
	return client, checks, nil
}

// syncCheck reports on the oracle node's sync status over grpc. It returns no
// check when ORACLE_GRPC_URL is unset, the caller closes the connection.
func (a app) syncCheck() ([]health.Check, *grpc.ClientConn, error) {
	if a.config.OracleGrpcUrl == "" {
		return nil, nil, nil
	}

	conn, err := oracle.NewGrpcConnection(a.config.OracleGrpcUrl)
	if err != nil {
		return nil, nil, err
	}
	checker := oracle.NewSyncChecker(tmservice.NewServiceClient(conn))

	checks := []health.Check{
		{
			Name:  "tax oracle sync",
			Check: checker.Check,
		},
	}
	return checks, conn, nil
}

func (a app) keeper() (keeper.Keeper, error) {
	tax, _, err := a.taxOracle()
	if err != nil {
		return keeper.Keeper{}, err
	}
	return keeper.NewKeeper(a.store, tax, a.logger), nil
}
