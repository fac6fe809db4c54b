package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// ModuleCdc encodes store records, requests and responses as amino json.
// None of the types carry interfaces so nothing needs registering.
var ModuleCdc = codec.NewLegacyAmino()
