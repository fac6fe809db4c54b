package store_test

import (
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto"
	dbm "github.com/tendermint/tm-db"

	"github.com/kava-labs/liquidation-queue/store"
	"github.com/kava-labs/liquidation-queue/types"
)

var (
	owner      = sdk.AccAddress(crypto.AddressHash([]byte("owner")))
	collateral = sdk.AccAddress(crypto.AddressHash([]byte("bluna")))
	otherToken = sdk.AccAddress(crypto.AddressHash([]byte("beth")))
	bidder1    = sdk.AccAddress(crypto.AddressHash([]byte("bidder1")))
	bidder2    = sdk.AccAddress(crypto.AddressHash([]byte("bidder2")))
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	return store.NewStore(dbm.NewMemDB())
}

func testConfig() types.Config {
	return types.Config{
		Owner:                owner,
		StableDenom:          "uusd",
		SafeRatio:            sdk.MustNewDecFromStr("0.8"),
		BidFee:               sdk.MustNewDecFromStr("0.01"),
		MinLiquidation:       sdk.ZeroInt(),
		LiquidationThreshold: sdk.NewInt(500),
		PriceTimeframe:       60,
		WaitingPeriod:        600,
	}
}

func testBid(idx uint64, token, bidder sdk.AccAddress) types.Bid {
	snapshot := types.NewPoolSnapshot()
	return types.Bid{
		Idx:                         idx,
		CollateralToken:             token,
		Bidder:                      bidder,
		Amount:                      sdk.NewInt(1000),
		PremiumSlot:                 1,
		PendingLiquidatedCollateral: sdk.ZeroInt(),
		ProductSnapshot:             snapshot.Product,
		SumSnapshot:                 snapshot.Sum,
	}
}

func TestConfigNotInitialized(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestConfigRoundTrip(t *testing.T) {
	s := newTestStore(t)
	config := testConfig()

	require.NoError(t, s.SetConfig(config))

	got, err := s.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Owner, got.Owner)
	assert.Equal(t, config.StableDenom, got.StableDenom)
	assert.True(t, config.SafeRatio.Equal(got.SafeRatio))
	assert.True(t, config.LiquidationThreshold.Equal(got.LiquidationThreshold))
	assert.Equal(t, config.WaitingPeriod, got.WaitingPeriod)
}

func TestCollateralInfo(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetCollateralInfo(collateral)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	info := types.CollateralInfo{
		CollateralToken:    collateral,
		MaxSlot:            30,
		PremiumRatePerSlot: sdk.MustNewDecFromStr("0.01"),
		BidThreshold:       sdk.NewInt(1000000),
	}
	require.NoError(t, s.SetCollateralInfo(info))

	got, err := s.GetCollateralInfo(collateral)
	require.NoError(t, err)
	assert.Equal(t, uint8(30), got.MaxSlot)
	assert.True(t, info.PremiumRatePerSlot.Equal(got.PremiumRatePerSlot))

	_, err = s.GetCollateralInfo(otherToken)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestBidPoolNotFunded(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetBidPool(collateral, 0, types.NewBidPool(sdk.ZeroDec())))

	_, err := s.GetBidPool(collateral, 1)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	// same slot on another collateral
	_, err = s.GetBidPool(otherToken, 0)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestGetBidPoolsPagination(t *testing.T) {
	s := newTestStore(t)
	for slot := uint8(0); slot < 25; slot++ {
		rate := sdk.NewDecWithPrec(int64(slot), 2)
		require.NoError(t, s.SetBidPool(collateral, slot, types.NewBidPool(rate)))
	}
	require.NoError(t, s.SetBidPool(otherToken, 3, types.NewBidPool(sdk.ZeroDec())))

	var seen []uint8
	var startAfter *uint8
	for {
		page, err := s.GetBidPools(collateral, startAfter, 7)
		require.NoError(t, err)
		require.LessOrEqual(t, len(page), 7)
		if len(page) == 0 {
			break
		}
		for _, entry := range page {
			assert.Equal(t, collateral, entry.CollateralToken)
			seen = append(seen, entry.Slot)
		}
		last := page[len(page)-1].Slot
		startAfter = &last
	}

	require.Len(t, seen, 25)
	for i, slot := range seen {
		assert.Equal(t, uint8(i), slot)
	}
}

func TestGetBidPoolsLimits(t *testing.T) {
	s := newTestStore(t)
	for slot := uint8(0); slot < 40; slot++ {
		require.NoError(t, s.SetBidPool(collateral, slot, types.NewBidPool(sdk.NewDecWithPrec(int64(slot), 3))))
	}

	page, err := s.GetBidPools(collateral, nil, 0)
	require.NoError(t, err)
	assert.Len(t, page, int(types.DefaultLimit))

	page, err = s.GetBidPools(collateral, nil, types.MaxLimit)
	require.NoError(t, err)
	assert.Len(t, page, int(types.MaxLimit))

	_, err = s.GetBidPools(collateral, nil, types.MaxLimit+1)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))

	last := uint8(255)
	page, err = s.GetBidPools(collateral, &last, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestBidNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBid(1)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestGetBidsByBidderPagination(t *testing.T) {
	s := newTestStore(t)

	// bids of bidder1 on collateral interleaved with unrelated bids
	var expected []uint64
	for idx := uint64(1); idx <= 36; idx++ {
		switch idx % 3 {
		case 0:
			require.NoError(t, s.SetBid(testBid(idx, collateral, bidder1)))
			expected = append(expected, idx)
		case 1:
			require.NoError(t, s.SetBid(testBid(idx, collateral, bidder2)))
		default:
			require.NoError(t, s.SetBid(testBid(idx, otherToken, bidder1)))
		}
	}

	var seen []uint64
	var startAfter *uint64
	for {
		page, err := s.GetBidsByBidder(collateral, bidder1, startAfter, 5)
		require.NoError(t, err)
		require.LessOrEqual(t, len(page), 5)
		if len(page) == 0 {
			break
		}
		for _, bid := range page {
			assert.Equal(t, bidder1, bid.Bidder)
			seen = append(seen, bid.Idx)
		}
		last := page[len(page)-1].Idx
		startAfter = &last
	}
	assert.Equal(t, expected, seen)

	_, err := s.GetBidsByBidder(collateral, bidder1, nil, 31)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestSetBidMovesIndex(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetBid(testBid(7, collateral, bidder1)))
	require.NoError(t, s.SetBid(testBid(7, collateral, bidder2)))

	bids, err := s.GetBidsByBidder(collateral, bidder1, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, bids)

	bids, err = s.GetBidsByBidder(collateral, bidder2, nil, 0)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, uint64(7), bids[0].Idx)
}

func TestBidWaitEndRoundTrip(t *testing.T) {
	s := newTestStore(t)
	waitEnd := uint64(1650000000)
	bid := testBid(3, collateral, bidder1)
	bid.WaitEnd = &waitEnd
	require.NoError(t, s.SetBid(bid))

	got, err := s.GetBid(3)
	require.NoError(t, err)
	require.NotNil(t, got.WaitEnd)
	assert.Equal(t, waitEnd, *got.WaitEnd)
	assert.True(t, bid.Amount.Equal(got.Amount))
}
