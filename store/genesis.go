package store

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/kava-labs/liquidation-queue/types"
)

// InitGenesis seeds an empty store. It refuses to overwrite an initialized one.
func (s Store) InitGenesis(gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if s.kv.Has(types.ConfigKey) {
		return sdkerrors.Wrap(types.ErrInvalidInput, "store is already initialized")
	}

	for _, info := range gs.Collaterals {
		if err := s.SetCollateralInfo(info); err != nil {
			return err
		}
	}
	for _, entry := range gs.BidPools {
		if err := s.SetBidPool(entry.CollateralToken, entry.Slot, entry.BidPool); err != nil {
			return err
		}
	}
	for _, bid := range gs.Bids {
		if err := s.SetBid(bid); err != nil {
			return err
		}
	}
	// config last, its presence marks the store as initialized
	return s.SetConfig(gs.Config)
}

// ExportGenesis reads the whole ledger back out
func (s Store) ExportGenesis() (types.GenesisState, error) {
	config, err := s.GetConfig()
	if err != nil {
		return types.GenesisState{}, err
	}

	gs := types.GenesisState{
		Config:      config,
		Collaterals: []types.CollateralInfo{},
		BidPools:    []types.BidPoolEntry{},
		Bids:        []types.Bid{},
	}

	if err := s.IterateCollateralInfos(func(info types.CollateralInfo) bool {
		gs.Collaterals = append(gs.Collaterals, info)
		return false
	}); err != nil {
		return types.GenesisState{}, err
	}
	if err := s.IterateBidPools(func(entry types.BidPoolEntry) bool {
		gs.BidPools = append(gs.BidPools, entry)
		return false
	}); err != nil {
		return types.GenesisState{}, err
	}
	if err := s.IterateBids(func(bid types.Bid) bool {
		gs.Bids = append(gs.Bids, bid)
		return false
	}); err != nil {
		return types.GenesisState{}, err
	}

	return gs, nil
}
