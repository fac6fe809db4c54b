package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName is used as the error codespace
	ModuleName = "liquidationqueue"

	// DefaultLimit is the page size used when a query does not set one
	DefaultLimit uint8 = 10
	// MaxLimit is the largest page size a query may request
	MaxLimit uint8 = 30
)

// Key prefixes for the ledger store
var (
	ConfigKey               = []byte{0x01}
	CollateralInfoKeyPrefix = []byte{0x02}
	BidPoolKeyPrefix        = []byte{0x03}
	BidKeyPrefix            = []byte{0x04}
	BidsByUserKeyPrefix     = []byte{0x05}
)

// CollateralInfoKey returns the key of a registered collateral
func CollateralInfoKey(collateralToken sdk.AccAddress) []byte {
	return address.MustLengthPrefix(collateralToken)
}

// BidPoolPrefix returns the prefix under which all slots of a collateral are stored
func BidPoolPrefix(collateralToken sdk.AccAddress) []byte {
	return address.MustLengthPrefix(collateralToken)
}

// BidPoolKey returns the key of one premium slot within a BidPoolPrefix store
func BidPoolKey(slot uint8) []byte {
	return []byte{slot}
}

// BidKey returns the key of a bid
func BidKey(idx uint64) []byte {
	return sdk.Uint64ToBigEndian(idx)
}

// BidsByUserPrefix returns the index prefix of all bids placed by a bidder on a collateral
func BidsByUserPrefix(collateralToken, bidder sdk.AccAddress) []byte {
	return append(address.MustLengthPrefix(collateralToken), address.MustLengthPrefix(bidder)...)
}
