package gasprice

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Source provides the current price of a unit of gas.
type Source interface {
	GasPrice(ctx context.Context) (sdk.DecCoin, error)
}

// StaticSource always returns the same price.
type StaticSource sdk.DecCoin

var _ Source = StaticSource{}

func (s StaticSource) GasPrice(_ context.Context) (sdk.DecCoin, error) {
	price := sdk.DecCoin(s)
	if err := price.Validate(); err != nil {
		return sdk.DecCoin{}, err
	}
	return price, nil
}
