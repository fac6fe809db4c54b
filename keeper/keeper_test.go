package keeper_test

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto"
	dbm "github.com/tendermint/tm-db"

	"github.com/kava-labs/liquidation-queue/keeper"
	"github.com/kava-labs/liquidation-queue/liquidation"
	"github.com/kava-labs/liquidation-queue/oracle/mock"
	"github.com/kava-labs/liquidation-queue/store"
	"github.com/kava-labs/liquidation-queue/types"
)

var (
	owner      = sdk.AccAddress(crypto.AddressHash([]byte("owner")))
	stranger   = sdk.AccAddress(crypto.AddressHash([]byte("stranger")))
	collateral = sdk.AccAddress(crypto.AddressHash([]byte("bluna")))
	bidder     = sdk.AccAddress(crypto.AddressHash([]byte("bidder")))
)

func testGenesis() types.GenesisState {
	pool0 := types.NewBidPool(sdk.ZeroDec())
	pool0.TotalBidAmount = sdk.NewInt(10000)
	pool1 := types.NewBidPool(sdk.MustNewDecFromStr("0.01"))
	pool1.TotalBidAmount = sdk.NewInt(500)

	var bids []types.Bid
	for idx := uint64(1); idx <= 4; idx++ {
		snapshot := types.NewPoolSnapshot()
		bids = append(bids, types.Bid{
			Idx:                         idx,
			CollateralToken:             collateral,
			Bidder:                      bidder,
			Amount:                      sdk.NewInt(int64(idx * 100)),
			PremiumSlot:                 uint8(idx % 2),
			PendingLiquidatedCollateral: sdk.ZeroInt(),
			ProductSnapshot:             snapshot.Product,
			SumSnapshot:                 snapshot.Sum,
		})
	}

	return types.GenesisState{
		Config: types.Config{
			Owner:                owner,
			StableDenom:          "uusd",
			SafeRatio:            sdk.MustNewDecFromStr("0.8"),
			BidFee:               sdk.ZeroDec(),
			MinLiquidation:       sdk.ZeroInt(),
			LiquidationThreshold: sdk.NewInt(500),
			PriceTimeframe:       60,
			WaitingPeriod:        600,
		},
		Collaterals: []types.CollateralInfo{
			{CollateralToken: collateral, MaxSlot: 2, PremiumRatePerSlot: sdk.MustNewDecFromStr("0.01"), BidThreshold: sdk.NewInt(1000)},
		},
		BidPools: []types.BidPoolEntry{
			{CollateralToken: collateral, Slot: 0, BidPool: pool0},
			{CollateralToken: collateral, Slot: 1, BidPool: pool1},
		},
		Bids: bids,
	}
}

func newTestKeeper(t *testing.T) (keeper.Keeper, *mock.MockTaxRateQuerier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	tax := mock.NewMockTaxRateQuerier(ctrl)

	s := store.NewStore(dbm.NewMemDB())
	require.NoError(t, s.InitGenesis(testGenesis()))

	return keeper.NewKeeper(s, tax, zerolog.Nop()), tax
}

func TestQueryConfigUninitialized(t *testing.T) {
	k := keeper.NewKeeper(store.NewStore(dbm.NewMemDB()), mock.NewMockTaxRateQuerier(gomock.NewController(t)), zerolog.Nop())

	_, err := k.QueryConfig()
	assert.True(t, errors.Is(err, types.ErrNotFound))
	assert.Error(t, k.Ping())
}

func TestQueryConfig(t *testing.T) {
	k, _ := newTestKeeper(t)

	resp, err := k.QueryConfig()
	require.NoError(t, err)
	assert.Equal(t, owner.String(), resp.Owner)
	assert.Equal(t, "", resp.OracleContract)
	assert.Equal(t, "uusd", resp.StableDenom)
	assert.Equal(t, uint64(600), resp.WaitingPeriod)
	assert.NoError(t, k.Ping())
}

func TestQueryLiquidationAmount(t *testing.T) {
	k, tax := newTestKeeper(t)
	tax.EXPECT().TaxRate(gomock.Any(), "uusd").Return(sdk.ZeroDec(), nil).Times(1)

	resp, plan, err := k.QueryLiquidationAmount(context.Background(), types.QueryLiquidationAmountParams{
		BorrowAmount: sdk.NewInt(500),
		BorrowLimit:  sdk.NewInt(400),
		StableDenom:  "uusd",
		Collaterals: types.TokensHuman{
			{CollateralToken: collateral.String(), Amount: sdk.NewInt(1000)},
		},
		CollateralPrices: []sdk.Dec{sdk.OneDec()},
	})
	require.NoError(t, err)

	// slot 0 absorbs everything, (500 - 320) / (1000 - 320)
	assert.Equal(t, liquidation.OutcomePartial, plan.Outcome)
	require.Len(t, resp.Collaterals, 1)
	assert.Equal(t, collateral.String(), resp.Collaterals[0].CollateralToken)
	assert.Equal(t, sdk.NewInt(264), resp.Collaterals[0].Amount)
}

func TestQueryLiquidationAmountSafePosition(t *testing.T) {
	// no tax query expected
	k, _ := newTestKeeper(t)

	resp, plan, err := k.QueryLiquidationAmount(context.Background(), types.QueryLiquidationAmountParams{
		BorrowAmount:     sdk.NewInt(100),
		BorrowLimit:      sdk.NewInt(400),
		Collaterals:      types.TokensHuman{{CollateralToken: collateral.String(), Amount: sdk.NewInt(1000)}},
		CollateralPrices: []sdk.Dec{sdk.OneDec()},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Collaterals)
	assert.Equal(t, liquidation.OutcomeNotRequired, plan.Outcome)
}

func TestQueryLiquidationAmountErrors(t *testing.T) {
	tests := []struct {
		name   string
		params types.QueryLiquidationAmountParams
		err    error
	}{
		{
			name: "wrong stable denom",
			params: types.QueryLiquidationAmountParams{
				BorrowAmount:     sdk.NewInt(500),
				BorrowLimit:      sdk.NewInt(400),
				StableDenom:      "ukrw",
				Collaterals:      types.TokensHuman{{CollateralToken: collateral.String(), Amount: sdk.NewInt(1000)}},
				CollateralPrices: []sdk.Dec{sdk.OneDec()},
			},
			err: types.ErrInvalidInput,
		},
		{
			name: "bad collateral address",
			params: types.QueryLiquidationAmountParams{
				BorrowAmount:     sdk.NewInt(500),
				BorrowLimit:      sdk.NewInt(400),
				Collaterals:      types.TokensHuman{{CollateralToken: "not an address", Amount: sdk.NewInt(1000)}},
				CollateralPrices: []sdk.Dec{sdk.OneDec()},
			},
			err: types.ErrInvalidAddress,
		},
		{
			name: "more collaterals than prices",
			params: types.QueryLiquidationAmountParams{
				BorrowAmount:     sdk.NewInt(500),
				BorrowLimit:      sdk.NewInt(400),
				Collaterals:      types.TokensHuman{{CollateralToken: collateral.String(), Amount: sdk.NewInt(1000)}},
				CollateralPrices: []sdk.Dec{},
			},
			err: types.ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// the tax oracle is never reached
			k, _ := newTestKeeper(t)

			_, _, err := k.QueryLiquidationAmount(context.Background(), tc.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "unexpected error %s", err)
		})
	}
}

func TestQueryBid(t *testing.T) {
	k, _ := newTestKeeper(t)

	resp, err := k.QueryBid(types.QueryBidParams{BidIdx: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), resp.Idx)
	assert.Equal(t, bidder.String(), resp.Bidder)
	assert.Equal(t, collateral.String(), resp.CollateralToken)
	assert.Equal(t, sdk.NewInt(300), resp.Amount)

	_, err = k.QueryBid(types.QueryBidParams{BidIdx: 99})
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestQueryBidsByUser(t *testing.T) {
	k, _ := newTestKeeper(t)

	startAfter := uint64(1)
	resp, err := k.QueryBidsByUser(types.QueryBidsByUserParams{
		CollateralToken: collateral.String(),
		Bidder:          bidder.String(),
		StartAfter:      &startAfter,
		Limit:           2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bids, 2)
	assert.Equal(t, uint64(2), resp.Bids[0].Idx)
	assert.Equal(t, uint64(3), resp.Bids[1].Idx)

	resp, err = k.QueryBidsByUser(types.QueryBidsByUserParams{
		CollateralToken: collateral.String(),
		Bidder:          stranger.String(),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Bids)

	_, err = k.QueryBidsByUser(types.QueryBidsByUserParams{
		CollateralToken: collateral.String(),
		Bidder:          "cosmos1invalid",
	})
	assert.True(t, errors.Is(err, types.ErrInvalidAddress))

	_, err = k.QueryBidsByUser(types.QueryBidsByUserParams{
		CollateralToken: collateral.String(),
		Bidder:          bidder.String(),
		Limit:           types.MaxLimit + 1,
	})
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestQueryBidPools(t *testing.T) {
	k, _ := newTestKeeper(t)

	pool, err := k.QueryBidPool(types.QueryBidPoolParams{CollateralToken: collateral.String(), BidSlot: 1})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), pool.Slot)
	assert.Equal(t, sdk.NewInt(500), pool.TotalBidAmount)

	_, err = k.QueryBidPool(types.QueryBidPoolParams{CollateralToken: collateral.String(), BidSlot: 5})
	assert.True(t, errors.Is(err, types.ErrNotFound))

	resp, err := k.QueryBidPools(types.QueryBidPoolsParams{CollateralToken: collateral.String()})
	require.NoError(t, err)
	require.Len(t, resp.BidPools, 2)
	assert.Equal(t, uint8(0), resp.BidPools[0].Slot)
	assert.Equal(t, uint8(1), resp.BidPools[1].Slot)

	startAfter := uint8(0)
	resp, err = k.QueryBidPools(types.QueryBidPoolsParams{CollateralToken: collateral.String(), StartAfter: &startAfter})
	require.NoError(t, err)
	require.Len(t, resp.BidPools, 1)
	assert.Equal(t, uint8(1), resp.BidPools[0].Slot)
}

func TestQueryCollateralInfo(t *testing.T) {
	k, _ := newTestKeeper(t)

	info, err := k.QueryCollateralInfo(types.QueryCollateralInfoParams{CollateralToken: collateral.String()})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), info.MaxSlot)

	_, err = k.QueryCollateralInfo(types.QueryCollateralInfoParams{CollateralToken: stranger.String()})
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestUpdateConfig(t *testing.T) {
	k, _ := newTestKeeper(t)

	safeRatio := sdk.MustNewDecFromStr("0.7")
	threshold := sdk.NewInt(1000)
	resp, err := k.UpdateConfig(types.MsgUpdateConfig{
		Sender:               owner.String(),
		SafeRatio:            &safeRatio,
		LiquidationThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, safeRatio, resp.SafeRatio)
	assert.Equal(t, threshold, resp.LiquidationThreshold)

	// untouched fields survive
	config, err := k.QueryConfig()
	require.NoError(t, err)
	assert.Equal(t, owner.String(), config.Owner)
	assert.Equal(t, "uusd", config.StableDenom)
	assert.Equal(t, uint64(60), config.PriceTimeframe)
	assert.True(t, config.SafeRatio.Equal(safeRatio))
}

func TestUpdateConfigTransfersOwnership(t *testing.T) {
	k, _ := newTestKeeper(t)

	newOwner := stranger.String()
	_, err := k.UpdateConfig(types.MsgUpdateConfig{Sender: owner.String(), Owner: &newOwner})
	require.NoError(t, err)

	waitingPeriod := uint64(1)
	_, err = k.UpdateConfig(types.MsgUpdateConfig{Sender: owner.String(), WaitingPeriod: &waitingPeriod})
	assert.True(t, errors.Is(err, types.ErrUnauthorized))

	_, err = k.UpdateConfig(types.MsgUpdateConfig{Sender: stranger.String(), WaitingPeriod: &waitingPeriod})
	require.NoError(t, err)
}

func TestUpdateConfigRejected(t *testing.T) {
	badRatio := sdk.OneDec()
	badOracle := "not an address"
	ratio := sdk.MustNewDecFromStr("0.5")

	tests := []struct {
		name string
		msg  types.MsgUpdateConfig
		err  error
	}{
		{"non owner", types.MsgUpdateConfig{Sender: stranger.String(), SafeRatio: &ratio}, types.ErrUnauthorized},
		{"bad sender", types.MsgUpdateConfig{Sender: "owner", SafeRatio: &ratio}, types.ErrInvalidAddress},
		{"invalid safe ratio", types.MsgUpdateConfig{Sender: owner.String(), SafeRatio: &badRatio}, types.ErrInvalidInput},
		{"invalid oracle", types.MsgUpdateConfig{Sender: owner.String(), OracleContract: &badOracle}, types.ErrInvalidAddress},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, _ := newTestKeeper(t)

			_, err := k.UpdateConfig(tc.msg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "unexpected error %s", err)

			config, err := k.QueryConfig()
			require.NoError(t, err)
			assert.True(t, config.SafeRatio.Equal(sdk.MustNewDecFromStr("0.8")), "config is unchanged")
		})
	}
}
