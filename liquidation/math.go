package liquidation

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Fixed point helpers. Every product and quotient truncates toward zero,
// equivalent to flooring for the non-negative values the engine works with.

// mulInt returns floor(i * d)
func mulInt(i sdk.Int, d sdk.Dec) sdk.Int {
	return sdk.NewDecFromInt(i).MulTruncate(d).TruncateInt()
}

// quoInt returns floor(i / d), d must be positive
func quoInt(i sdk.Int, d sdk.Dec) sdk.Int {
	return sdk.NewDecFromInt(i).QuoTruncate(d).TruncateInt()
}

// ratioOf returns a / b as a decimal, b must be positive
func ratioOf(a, b sdk.Int) sdk.Dec {
	return sdk.NewDecFromInt(a).QuoTruncate(sdk.NewDecFromInt(b))
}
