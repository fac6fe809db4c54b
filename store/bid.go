package store

import (
	"fmt"
	"math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/kava-labs/liquidation-queue/types"
)

var indexValue = []byte{0x01}

// GetBid returns a bid by index
func (s Store) GetBid(idx uint64) (types.Bid, error) {
	var bid types.Bid
	found, err := s.get(s.prefixStore(types.BidKeyPrefix), types.BidKey(idx), &bid)
	if err != nil {
		return types.Bid{}, err
	}
	if !found {
		return types.Bid{}, sdkerrors.Wrapf(types.ErrNotFound, "bid %d", idx)
	}
	return bid, nil
}

// SetBid writes a bid and keeps the per bidder index in sync
func (s Store) SetBid(bid types.Bid) error {
	if existing, err := s.GetBid(bid.Idx); err == nil {
		s.bidsByBidderStore(existing.CollateralToken, existing.Bidder).Delete(types.BidKey(existing.Idx))
	}

	if err := s.set(s.prefixStore(types.BidKeyPrefix), types.BidKey(bid.Idx), bid); err != nil {
		return err
	}
	s.bidsByBidderStore(bid.CollateralToken, bid.Bidder).Set(types.BidKey(bid.Idx), indexValue)
	return nil
}

// GetBidsByBidder pages through the bids a bidder placed on a collateral in
// ascending index order, starting after startAfter when it is set
func (s Store) GetBidsByBidder(collateralToken, bidder sdk.AccAddress, startAfter *uint64, limit uint8) ([]types.Bid, error) {
	pageSize, err := pageLimit(limit)
	if err != nil {
		return nil, err
	}

	bids := []types.Bid{}

	var start []byte
	if startAfter != nil {
		if *startAfter == math.MaxUint64 {
			return bids, nil
		}
		start = types.BidKey(*startAfter + 1)
	}

	iterator := s.bidsByBidderStore(collateralToken, bidder).Iterator(start, nil)
	defer iterator.Close()

	for ; iterator.Valid() && len(bids) < pageSize; iterator.Next() {
		idx := sdk.BigEndianToUint64(iterator.Key())
		bid, err := s.GetBid(idx)
		if err != nil {
			return nil, fmt.Errorf("bid index out of sync: %w", err)
		}
		bids = append(bids, bid)
	}
	return bids, nil
}

// IterateBids calls cb for every bid in index order until cb returns true
func (s Store) IterateBids(cb func(bid types.Bid) (stop bool)) error {
	iterator := s.prefixStore(types.BidKeyPrefix).Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var bid types.Bid
		if err := s.cdc.UnmarshalJSON(iterator.Value(), &bid); err != nil {
			return fmt.Errorf("failed to decode bid: %w", err)
		}
		if cb(bid) {
			break
		}
	}
	return nil
}

func (s Store) bidsByBidderStore(collateralToken, bidder sdk.AccAddress) sdk.KVStore {
	return s.prefixStore(types.BidsByUserKeyPrefix, types.BidsByUserPrefix(collateralToken, bidder))
}
