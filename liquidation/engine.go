package liquidation

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/kava-labs/liquidation-queue/types"
)

// BidPoolReader is the part of the ledger the engine reads
type BidPoolReader interface {
	GetCollateralInfo(collateralToken sdk.AccAddress) (types.CollateralInfo, error)
	GetBidPool(collateralToken sdk.AccAddress, slot uint8) (types.BidPool, error)
}

// TaxRateQuerier returns the transfer tax charged on a denom
type TaxRateQuerier interface {
	TaxRate(ctx context.Context, denom string) (sdk.Dec, error)
}

// Outcome names the rule that produced a plan
type Outcome string

const (
	// OutcomeNotRequired means the position is within its borrow limit
	OutcomeNotRequired Outcome = "not_required"
	// OutcomeInsufficientBids means the bid pools cannot cover the debt, so all collateral goes
	OutcomeInsufficientBids Outcome = "insufficient_bids"
	// OutcomeBelowThreshold means the collateral is too small to keep, the whole debt is repaid
	OutcomeBelowThreshold Outcome = "below_threshold"
	// OutcomePartial means just enough is liquidated to return to the safe ratio
	OutcomePartial Outcome = "partial"
)

// Plan is the result of a liquidation amount computation
type Plan struct {
	Collaterals types.Tokens
	Outcome     Outcome
	// ratio applied to every collateral, one for insufficient bids and zero when not required
	Ratio sdk.Dec
	// stable value the bid pools would pay for all collateral, after bid fee and tax
	ExpectedRepay sdk.Int
}

// Engine computes how much collateral has to be sold to the bid pools
type Engine struct {
	pools BidPoolReader
	tax   TaxRateQuerier
}

func NewEngine(pools BidPoolReader, tax TaxRateQuerier) Engine {
	return Engine{
		pools: pools,
		tax:   tax,
	}
}

// LiquidationAmount returns the collateral to liquidate for a position
// borrowing borrowAmount against borrowLimit. collaterals and prices are
// parallel, prices are in stable denom per unit of collateral.
func (e Engine) LiquidationAmount(
	ctx context.Context,
	config types.Config,
	borrowAmount, borrowLimit sdk.Int,
	collaterals types.Tokens,
	prices []sdk.Dec,
) (plan Plan, err error) {
	if err := validateInputs(borrowAmount, borrowLimit, collaterals, prices); err != nil {
		return Plan{}, err
	}

	if borrowAmount.LTE(borrowLimit) {
		return Plan{
			Collaterals:   types.Tokens{},
			Outcome:       OutcomeNotRequired,
			Ratio:         sdk.ZeroDec(),
			ExpectedRepay: sdk.ZeroInt(),
		}, nil
	}

	taxRate, err := e.tax.TaxRate(ctx, config.StableDenom)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to query tax rate for %s: %w", config.StableDenom, err)
	}
	if taxRate.IsNil() || taxRate.IsNegative() || taxRate.GT(sdk.OneDec()) {
		return Plan{}, sdkerrors.Wrapf(types.ErrArithmeticDomain, "tax rate %s out of range", taxRate)
	}

	// sdk math panics on overflow
	defer func() {
		if r := recover(); r != nil {
			plan = Plan{}
			err = sdkerrors.Wrapf(types.ErrArithmeticDomain, "%v", r)
		}
	}()

	return e.computePlan(config, taxRate, borrowAmount, borrowLimit, collaterals, prices)
}

func (e Engine) computePlan(
	config types.Config,
	taxRate sdk.Dec,
	borrowAmount, borrowLimit sdk.Int,
	collaterals types.Tokens,
	prices []sdk.Dec,
) (Plan, error) {
	baseFeeDeductor := sdk.OneDec().Sub(config.BidFee).MulTruncate(sdk.OneDec().Sub(taxRate))

	collateralsValue := sdk.ZeroInt()
	expectedRepay := sdk.ZeroInt()
	for i, collateral := range collaterals {
		price := prices[i]
		collateralsValue = collateralsValue.Add(mulInt(collateral.Amount, price))

		repay, err := e.sweepLadder(collateral, price)
		if err != nil {
			return Plan{}, err
		}
		expectedRepay = expectedRepay.Add(repay)
	}

	expectedRepay = mulInt(expectedRepay, baseFeeDeductor)

	// the pools cannot repay the debt, sell everything
	if expectedRepay.LTE(borrowAmount) {
		return Plan{
			Collaterals:   collaterals,
			Outcome:       OutcomeInsufficientBids,
			Ratio:         sdk.OneDec(),
			ExpectedRepay: expectedRepay,
		}, nil
	}

	var (
		ratio   sdk.Dec
		outcome Outcome
	)
	safeBorrow := mulInt(borrowLimit, config.SafeRatio)
	if collateralsValue.LT(config.LiquidationThreshold) {
		ratio = ratioOf(borrowAmount, expectedRepay)
		outcome = OutcomeBelowThreshold
	} else {
		ratio = ratioOf(borrowAmount.Sub(safeBorrow), expectedRepay.Sub(safeBorrow))
		outcome = OutcomePartial
	}
	ratio = sdk.MinDec(sdk.OneDec(), ratio)

	liquidated := types.Tokens{}
	for i, collateral := range collaterals {
		amount := mulInt(collateral.Amount, ratio)
		if !amount.IsPositive() {
			continue
		}
		if config.MinLiquidation.IsPositive() && mulInt(amount, prices[i]).LT(config.MinLiquidation) {
			continue
		}
		liquidated = append(liquidated, types.Token{Address: collateral.Address, Amount: amount})
	}

	return Plan{
		Collaterals:   liquidated,
		Outcome:       outcome,
		Ratio:         ratio,
		ExpectedRepay: expectedRepay,
	}, nil
}

// sweepLadder returns the stable value the premium slots of a collateral
// would pay for the whole amount, cheapest discount first. The result is
// before bid fee and tax.
func (e Engine) sweepLadder(collateral types.Token, price sdk.Dec) (sdk.Int, error) {
	info, err := e.pools.GetCollateralInfo(collateral.Address)
	if err != nil {
		return sdk.Int{}, err
	}

	repay := sdk.ZeroInt()
	remaining := collateral.Amount
	for slot := uint8(0); slot < info.MaxSlot; slot++ {
		pool, err := e.pools.GetBidPool(collateral.Address, slot)
		if err != nil {
			// an unfunded slot has no liquidity
			continue
		}
		if !pool.HasLiquidity() {
			continue
		}

		discount := sdk.OneDec().Sub(pool.PremiumRate)
		poolRepay := mulInt(mulInt(remaining, price), discount)
		if poolRepay.LTE(pool.TotalBidAmount) {
			repay = repay.Add(poolRepay)
			break
		}

		// slot is consumed, move the collateral it absorbs to the next one
		poolRepay = pool.TotalBidAmount
		effectivePrice := discount.MulTruncate(price)
		if !effectivePrice.IsPositive() {
			return sdk.Int{}, sdkerrors.Wrapf(types.ErrArithmeticDomain, "collateral %s slot %d has no effective price", collateral.Address, slot)
		}
		remaining = remaining.Sub(quoInt(poolRepay, effectivePrice))
		if remaining.IsNegative() {
			return sdk.Int{}, sdkerrors.Wrapf(types.ErrArithmeticDomain, "collateral %s slot %d absorbs more than the remaining amount", collateral.Address, slot)
		}
		repay = repay.Add(poolRepay)
	}

	return repay, nil
}

func validateInputs(borrowAmount, borrowLimit sdk.Int, collaterals types.Tokens, prices []sdk.Dec) error {
	if borrowAmount.IsNil() || borrowAmount.IsNegative() {
		return sdkerrors.Wrap(types.ErrInvalidInput, "borrow amount must be non-negative")
	}
	if borrowLimit.IsNil() || borrowLimit.IsNegative() {
		return sdkerrors.Wrap(types.ErrInvalidInput, "borrow limit must be non-negative")
	}
	if len(collaterals) != len(prices) {
		return sdkerrors.Wrapf(types.ErrInvalidInput, "%d collaterals but %d prices", len(collaterals), len(prices))
	}
	for i, collateral := range collaterals {
		if collateral.Amount.IsNil() || collateral.Amount.IsNegative() {
			return sdkerrors.Wrapf(types.ErrInvalidInput, "collateral %s amount must be non-negative", collateral.Address)
		}
		if prices[i].IsNil() || prices[i].IsNegative() {
			return sdkerrors.Wrapf(types.ErrInvalidInput, "collateral %s price must be non-negative", collateral.Address)
		}
	}
	return nil
}
