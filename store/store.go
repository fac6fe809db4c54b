package store

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store/dbadapter"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	dbm "github.com/tendermint/tm-db"

	"github.com/kava-labs/liquidation-queue/types"
)

// Store reads and writes the liquidation queue ledger. Every read goes to the
// underlying database, nothing is cached.
type Store struct {
	kv  sdk.KVStore
	cdc *codec.LegacyAmino
}

// NewStore wraps a tendermint database
func NewStore(db dbm.DB) Store {
	return Store{
		kv:  dbadapter.Store{DB: db},
		cdc: types.ModuleCdc,
	}
}

// OpenDB opens the database backing a store. Use memdb for throwaway state.
func OpenDB(name string, backend string, dir string) (dbm.DB, error) {
	db, err := dbm.NewDB(name, dbm.BackendType(backend), dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database in %s: %w", backend, dir, err)
	}
	return db, nil
}

func (s Store) prefixStore(p ...[]byte) prefix.Store {
	var full []byte
	for _, part := range p {
		full = append(full, part...)
	}
	return prefix.NewStore(s.kv, full)
}

func (s Store) get(kv sdk.KVStore, key []byte, ptr interface{}) (bool, error) {
	bz := kv.Get(key)
	if bz == nil {
		return false, nil
	}
	if err := s.cdc.UnmarshalJSON(bz, ptr); err != nil {
		return false, fmt.Errorf("failed to decode record %X: %w", key, err)
	}
	return true, nil
}

func (s Store) set(kv sdk.KVStore, key []byte, value interface{}) error {
	bz, err := s.cdc.MarshalJSON(value)
	if err != nil {
		return fmt.Errorf("failed to encode record %X: %w", key, err)
	}
	kv.Set(key, bz)
	return nil
}

// GetConfig returns the deployment config
func (s Store) GetConfig() (types.Config, error) {
	var config types.Config
	found, err := s.get(s.kv, types.ConfigKey, &config)
	if err != nil {
		return types.Config{}, err
	}
	if !found {
		return types.Config{}, sdkerrors.Wrap(types.ErrNotFound, "config not initialized")
	}
	return config, nil
}

// SetConfig replaces the deployment config
func (s Store) SetConfig(config types.Config) error {
	return s.set(s.kv, types.ConfigKey, config)
}

// GetCollateralInfo returns a registered collateral
func (s Store) GetCollateralInfo(collateralToken sdk.AccAddress) (types.CollateralInfo, error) {
	var info types.CollateralInfo
	found, err := s.get(s.prefixStore(types.CollateralInfoKeyPrefix), types.CollateralInfoKey(collateralToken), &info)
	if err != nil {
		return types.CollateralInfo{}, err
	}
	if !found {
		return types.CollateralInfo{}, sdkerrors.Wrapf(types.ErrNotFound, "collateral %s not registered", collateralToken)
	}
	return info, nil
}

// SetCollateralInfo registers or replaces a collateral
func (s Store) SetCollateralInfo(info types.CollateralInfo) error {
	return s.set(s.prefixStore(types.CollateralInfoKeyPrefix), types.CollateralInfoKey(info.CollateralToken), info)
}

// IterateCollateralInfos calls cb for every registered collateral until cb returns true
func (s Store) IterateCollateralInfos(cb func(info types.CollateralInfo) (stop bool)) error {
	iterator := s.prefixStore(types.CollateralInfoKeyPrefix).Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var info types.CollateralInfo
		if err := s.cdc.UnmarshalJSON(iterator.Value(), &info); err != nil {
			return fmt.Errorf("failed to decode collateral info: %w", err)
		}
		if cb(info) {
			break
		}
	}
	return nil
}

// pageLimit applies the default page size and rejects oversized pages
func pageLimit(limit uint8) (int, error) {
	if limit == 0 {
		return int(types.DefaultLimit), nil
	}
	if limit > types.MaxLimit {
		return 0, sdkerrors.Wrapf(types.ErrInvalidInput, "limit %d exceeds maximum %d", limit, types.MaxLimit)
	}
	return int(limit), nil
}
