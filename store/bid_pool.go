package store

import (
	"fmt"
	"math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/kava-labs/liquidation-queue/types"
)

// GetBidPool returns one premium slot of a collateral
func (s Store) GetBidPool(collateralToken sdk.AccAddress, slot uint8) (types.BidPool, error) {
	var pool types.BidPool
	found, err := s.get(s.prefixStore(types.BidPoolKeyPrefix, types.BidPoolPrefix(collateralToken)), types.BidPoolKey(slot), &pool)
	if err != nil {
		return types.BidPool{}, err
	}
	if !found {
		return types.BidPool{}, sdkerrors.Wrapf(types.ErrNotFound, "bid pool %s slot %d", collateralToken, slot)
	}
	return pool, nil
}

// SetBidPool writes one premium slot of a collateral
func (s Store) SetBidPool(collateralToken sdk.AccAddress, slot uint8, pool types.BidPool) error {
	return s.set(s.prefixStore(types.BidPoolKeyPrefix, types.BidPoolPrefix(collateralToken)), types.BidPoolKey(slot), pool)
}

// GetBidPools pages through the funded slots of a collateral in ascending
// slot order, starting after startAfter when it is set
func (s Store) GetBidPools(collateralToken sdk.AccAddress, startAfter *uint8, limit uint8) ([]types.BidPoolEntry, error) {
	pageSize, err := pageLimit(limit)
	if err != nil {
		return nil, err
	}

	pools := []types.BidPoolEntry{}

	var start []byte
	if startAfter != nil {
		if *startAfter == math.MaxUint8 {
			return pools, nil
		}
		start = types.BidPoolKey(*startAfter + 1)
	}

	iterator := s.prefixStore(types.BidPoolKeyPrefix, types.BidPoolPrefix(collateralToken)).Iterator(start, nil)
	defer iterator.Close()

	for ; iterator.Valid() && len(pools) < pageSize; iterator.Next() {
		var pool types.BidPool
		if err := s.cdc.UnmarshalJSON(iterator.Value(), &pool); err != nil {
			return nil, fmt.Errorf("failed to decode bid pool: %w", err)
		}
		pools = append(pools, types.BidPoolEntry{
			CollateralToken: collateralToken,
			Slot:            iterator.Key()[0],
			BidPool:         pool,
		})
	}
	return pools, nil
}

// IterateBidPools calls cb for every bid pool of every collateral until cb returns true
func (s Store) IterateBidPools(cb func(entry types.BidPoolEntry) (stop bool)) error {
	iterator := s.prefixStore(types.BidPoolKeyPrefix).Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		// key is a length prefixed collateral address followed by the slot byte
		key := iterator.Key()
		if len(key) < 2 || len(key) != int(key[0])+2 {
			return fmt.Errorf("malformed bid pool key %X", key)
		}
		collateralToken := sdk.AccAddress(append([]byte{}, key[1:1+key[0]]...))
		slot := key[len(key)-1]

		var pool types.BidPool
		if err := s.cdc.UnmarshalJSON(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("failed to decode bid pool: %w", err)
		}
		if cb(types.BidPoolEntry{CollateralToken: collateralToken, Slot: slot, BidPool: pool}) {
			break
		}
	}
	return nil
}
