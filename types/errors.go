package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var (
	// ErrNotFound is returned when a config, collateral, bid or bid pool record does not exist
	ErrNotFound = sdkerrors.Register(ModuleName, 2, "not found")
	// ErrArithmeticDomain is returned on division by zero or fixed-point overflow
	ErrArithmeticDomain = sdkerrors.Register(ModuleName, 3, "arithmetic domain error")
	// ErrUnauthorized is returned when a mutation is sent by someone other than the owner
	ErrUnauthorized = sdkerrors.Register(ModuleName, 4, "unauthorized")
	// ErrInvalidInput is returned when a request is rejected before any computation
	ErrInvalidInput = sdkerrors.Register(ModuleName, 5, "invalid input")
	// ErrInvalidAddress is returned when a bech32 address cannot be decoded
	ErrInvalidAddress = sdkerrors.Register(ModuleName, 6, "invalid address")
)
