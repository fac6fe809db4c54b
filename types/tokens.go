package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Token is an amount of a collateral token identified by its canonical address
type Token struct {
	Address sdk.AccAddress
	Amount  sdk.Int
}

// Tokens is an ordered list of collateral amounts
type Tokens []Token

// TokenHuman is a Token addressed by its bech32 form
type TokenHuman struct {
	CollateralToken string  `json:"collateral_token"`
	Amount          sdk.Int `json:"amount"`
}

// TokensHuman is an ordered list of collateral amounts addressed by bech32
type TokensHuman []TokenHuman

// ToCanonical decodes every bech32 address, keeping the order
func (th TokensHuman) ToCanonical() (Tokens, error) {
	tokens := make(Tokens, 0, len(th))
	for _, t := range th {
		addr, err := sdk.AccAddressFromBech32(t.CollateralToken)
		if err != nil {
			return nil, sdkerrors.Wrapf(ErrInvalidAddress, "collateral token %q: %s", t.CollateralToken, err)
		}
		tokens = append(tokens, Token{Address: addr, Amount: t.Amount})
	}
	return tokens, nil
}

// ToHuman encodes every address as bech32, keeping the order
func (ts Tokens) ToHuman() TokensHuman {
	human := make(TokensHuman, 0, len(ts))
	for _, t := range ts {
		human = append(human, TokenHuman{CollateralToken: t.Address.String(), Amount: t.Amount})
	}
	return human
}
