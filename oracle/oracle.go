package oracle

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/kava-labs/liquidation-queue/types"
)

//go:generate mockgen -destination mock/oracle.go -package mock . TaxRateQuerier

// TaxRateQuerier returns the transfer tax charged on a denom
type TaxRateQuerier interface {
	TaxRate(ctx context.Context, denom string) (sdk.Dec, error)
}

// StaticTaxRate charges the same fixed rate on every denom
type StaticTaxRate struct {
	rate sdk.Dec
}

var _ TaxRateQuerier = StaticTaxRate{}

// NewStaticTaxRate returns a tax oracle with a fixed rate in [0, 1]
func NewStaticTaxRate(rate sdk.Dec) (StaticTaxRate, error) {
	if rate.IsNil() || rate.IsNegative() || rate.GT(sdk.OneDec()) {
		return StaticTaxRate{}, sdkerrors.Wrapf(types.ErrInvalidInput, "tax rate must be in [0, 1], got %s", rate)
	}
	return StaticTaxRate{rate: rate}, nil
}

func (s StaticTaxRate) TaxRate(_ context.Context, _ string) (sdk.Dec, error) {
	return s.rate, nil
}
