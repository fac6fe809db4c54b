package config

import (
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	dbm "github.com/tendermint/tm-db"
)

const (
	homeEnvKey          = "LIQUIDATION_QUEUE_HOME"
	dbBackendEnvKey     = "LIQUIDATION_QUEUE_DB_BACKEND"
	listenAddrEnvKey    = "LISTEN_ADDR"
	oracleRpcUrlEnvKey  = "ORACLE_RPC_URL"
	oracleGrpcUrlEnvKey = "ORACLE_GRPC_URL"
	taxRateEnvKey       = "TAX_RATE"
	bech32PrefixEnvKey  = "BECH32_PREFIX"
	logLevelEnvKey      = "LOG_LEVEL"

	DefaultHome         = "./data"
	DefaultListenAddr   = ":8080"
	DefaultBech32Prefix = "terra"
	DBName              = "liquidation_queue"
)

// ConfigLoader provides an interface for
// loading config values from a provided key
type ConfigLoader interface {
	Get(key string) string
}

// Config provides application configuration
type Config struct {
	Home      string
	DBBackend dbm.BackendType
	// address the query server binds to
	ListenAddr string
	// tendermint rpc serving the treasury tax rate, the static TaxRate is used when empty
	OracleRpcUrl string
	// grpc endpoint of the same node, only used to report whether it is syncing
	OracleGrpcUrl string
	TaxRate       sdk.Dec
	Bech32Prefix  string
	LogLevel      zerolog.Level
}

// LoadConfig loads key values from a ConfigLoader
// and returns a new Config
func LoadConfig(loader ConfigLoader, logger zerolog.Logger) (Config, error) {
	// Ignore error from godotenv, continue if there isn't an .env file and
	// check if required env vars already exist
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env not found, attempting to proceed with available env variables")
	}

	home := loader.Get(homeEnvKey)
	if home == "" {
		home = DefaultHome
	}

	backend := dbm.BackendType(loader.Get(dbBackendEnvKey))
	switch backend {
	case "":
		backend = dbm.GoLevelDBBackend
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return Config{}, fmt.Errorf("%s must be %s or %s, got %s", dbBackendEnvKey, dbm.GoLevelDBBackend, dbm.MemDBBackend, backend)
	}

	listenAddr := loader.Get(listenAddrEnvKey)
	if listenAddr == "" {
		listenAddr = DefaultListenAddr
	}

	taxRate := sdk.ZeroDec()
	if v := loader.Get(taxRateEnvKey); v != "" {
		rate, err := sdk.NewDecFromStr(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", taxRateEnvKey, err)
		}
		taxRate = rate
	}

	prefix := loader.Get(bech32PrefixEnvKey)
	if prefix == "" {
		prefix = DefaultBech32Prefix
	}

	level := zerolog.InfoLevel
	if v := loader.Get(logLevelEnvKey); v != "" {
		parsed, err := zerolog.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", logLevelEnvKey, err)
		}
		level = parsed
	}

	return Config{
		Home:          home,
		DBBackend:     backend,
		ListenAddr:    listenAddr,
		OracleRpcUrl:  loader.Get(oracleRpcUrlEnvKey),
		OracleGrpcUrl: loader.Get(oracleGrpcUrlEnvKey),
		TaxRate:       taxRate,
		Bech32Prefix:  prefix,
		LogLevel:      level,
	}, nil
}

// EnvLoader loads keys from os environment
type EnvLoader struct {
}

// Get retrieves key from environment
func (l *EnvLoader) Get(key string) string {
	return os.Getenv(key)
}

// SetBech32Prefixes configures the sdk to render addresses with prefix
func SetBech32Prefixes(prefix string) {
	config := sdk.GetConfig()
	config.SetBech32PrefixForAccount(prefix, prefix+sdk.PrefixPublic)
	config.SetBech32PrefixForValidator(prefix+sdk.PrefixValidator+sdk.PrefixOperator, prefix+sdk.PrefixValidator+sdk.PrefixOperator+sdk.PrefixPublic)
	config.SetBech32PrefixForConsensusNode(prefix+sdk.PrefixValidator+sdk.PrefixConsensus, prefix+sdk.PrefixValidator+sdk.PrefixConsensus+sdk.PrefixPublic)
}
