package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/bytes"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

const (
	TreasuryQuerierRoute = "treasury"
	QueryTaxRate         = "taxRate"
)

type RpcClient interface {
	Status(ctx context.Context) (*ctypes.ResultStatus, error)
	ABCIQueryWithOptions(
		ctx context.Context,
		path string,
		data bytes.HexBytes,
		opts rpcclient.ABCIQueryOptions,
	) (*ctypes.ResultABCIQuery, error)
}

// RpcTaxClient reads the tax rate from the treasury module of a node. The
// treasury charges a single rate on every denom.
type RpcTaxClient struct {
	rpc RpcClient
	cdc *codec.LegacyAmino
}

var _ TaxRateQuerier = (*RpcTaxClient)(nil)

func NewRpcTaxClient(rpc RpcClient, cdc *codec.LegacyAmino) *RpcTaxClient {
	return &RpcTaxClient{
		rpc: rpc,
		cdc: cdc,
	}
}

// TaxRate queries the latest committed tax rate
func (c *RpcTaxClient) TaxRate(ctx context.Context, denom string) (sdk.Dec, error) {
	path := fmt.Sprintf("custom/%s/%s", TreasuryQuerierRoute, QueryTaxRate)

	data, err := c.abciQuery(ctx, path, bytes.HexBytes{})
	if err != nil {
		return sdk.Dec{}, err
	}
	if len(data) == 0 {
		return sdk.Dec{}, fmt.Errorf("empty tax rate response for %s", denom)
	}

	var rate sdk.Dec
	if err := c.cdc.UnmarshalJSON(data, &rate); err != nil {
		return sdk.Dec{}, fmt.Errorf("failed to decode tax rate: %w", err)
	}

	return rate, nil
}

// Ping checks the node answers
func (c *RpcTaxClient) Ping(ctx context.Context) error {
	_, err := c.rpc.Status(ctx)
	return err
}

func (c *RpcTaxClient) abciQuery(
	ctx context.Context,
	path string,
	data bytes.HexBytes) ([]byte, error) {
	opts := rpcclient.ABCIQueryOptions{Height: 0, Prove: false}

	result, err := c.rpc.ABCIQueryWithOptions(ctx, path, data, opts)
	if err != nil {
		return []byte{}, err
	}

	resp := result.Response
	if !resp.IsOK() {
		return []byte{}, errors.New(resp.Log)
	}

	value := result.Response.GetValue()
	if len(value) == 0 {
		return []byte{}, nil
	}

	return value, nil
}
