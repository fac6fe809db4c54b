package store_test

import (
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kava-labs/liquidation-queue/types"
)

func testGenesis() types.GenesisState {
	return types.GenesisState{
		Config: testConfig(),
		Collaterals: []types.CollateralInfo{
			{CollateralToken: collateral, MaxSlot: 3, PremiumRatePerSlot: sdk.MustNewDecFromStr("0.01"), BidThreshold: sdk.NewInt(100)},
			{CollateralToken: otherToken, MaxSlot: 2, PremiumRatePerSlot: sdk.MustNewDecFromStr("0.02"), BidThreshold: sdk.NewInt(100)},
		},
		BidPools: []types.BidPoolEntry{
			{CollateralToken: collateral, Slot: 0, BidPool: types.NewBidPool(sdk.ZeroDec())},
			{CollateralToken: collateral, Slot: 1, BidPool: types.NewBidPool(sdk.MustNewDecFromStr("0.01"))},
			{CollateralToken: otherToken, Slot: 1, BidPool: types.NewBidPool(sdk.MustNewDecFromStr("0.02"))},
		},
		Bids: []types.Bid{
			testBid(1, collateral, bidder1),
			testBid(2, otherToken, bidder2),
		},
	}
}

func TestGenesisRoundTrip(t *testing.T) {
	s := newTestStore(t)
	gs := testGenesis()

	require.NoError(t, s.InitGenesis(gs))

	exported, err := s.ExportGenesis()
	require.NoError(t, err)
	assert.Equal(t, gs.Config.Owner, exported.Config.Owner)
	assert.Len(t, exported.Collaterals, 2)
	assert.Len(t, exported.BidPools, 3)
	require.Len(t, exported.Bids, 2)
	assert.Equal(t, uint64(1), exported.Bids[0].Idx)
	assert.Equal(t, uint64(2), exported.Bids[1].Idx)
	require.NoError(t, exported.Validate())

	// exported state seeds an identical store
	other := newTestStore(t)
	require.NoError(t, other.InitGenesis(exported))
	pool, err := other.GetBidPool(otherToken, 1)
	require.NoError(t, err)
	assert.True(t, pool.PremiumRate.Equal(sdk.MustNewDecFromStr("0.02")))
}

func TestInitGenesisTwice(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InitGenesis(testGenesis()))

	err := s.InitGenesis(testGenesis())
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestInitGenesisInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(gs *types.GenesisState)
	}{
		{
			name:   "empty owner",
			modify: func(gs *types.GenesisState) { gs.Config.Owner = nil },
		},
		{
			name:   "safe ratio of one",
			modify: func(gs *types.GenesisState) { gs.Config.SafeRatio = sdk.OneDec() },
		},
		{
			name:   "duplicate collateral",
			modify: func(gs *types.GenesisState) { gs.Collaterals = append(gs.Collaterals, gs.Collaterals[0]) },
		},
		{
			name:   "slot out of range",
			modify: func(gs *types.GenesisState) { gs.BidPools[0].Slot = 3 },
		},
		{
			name: "premium rate not increasing",
			modify: func(gs *types.GenesisState) {
				gs.BidPools[1].BidPool.PremiumRate = sdk.ZeroDec()
			},
		},
		{
			name: "negative liquidity",
			modify: func(gs *types.GenesisState) {
				gs.BidPools[0].BidPool.TotalBidAmount = sdk.NewInt(-1)
			},
		},
		{
			name:   "duplicate bid",
			modify: func(gs *types.GenesisState) { gs.Bids[1].Idx = 1 },
		},
		{
			name: "bid on unregistered collateral",
			modify: func(gs *types.GenesisState) {
				gs.Bids[0].CollateralToken = bidder1
			},
		},
		{
			name: "bid snapshot ahead of pool",
			modify: func(gs *types.GenesisState) {
				gs.Bids[0].EpochSnapshot = 1
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := testGenesis()
			tc.modify(&gs)

			s := newTestStore(t)
			err := s.InitGenesis(gs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidInput))

			_, err = s.GetConfig()
			assert.True(t, errors.Is(err, types.ErrNotFound), "nothing is written on failure")
		})
	}
}
