package tx

import (
	"context"
	"fmt"

	"github.com/tessellated-io/txpipe/cosmos/gasprice"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// DefaultGasAdjustment is applied to simulated gas when a request does not set its own.
const DefaultGasAdjustment = 1.25

// GasEstimator prices a signed provisional transaction.
type GasEstimator func(ctx context.Context, signedTx *txtypes.TxRaw, gasAdjustment float64) (*GasEstimate, error)

// GasEstimationMethod binds an estimation strategy to a client.
type GasEstimationMethod func(client *Client) GasEstimator

// CosmosSimulation simulates the transaction on the node and pays gasPrice per unit of the adjusted gas.
func CosmosSimulation(gasPrice sdk.DecCoin) GasEstimationMethod {
	return func(client *Client) GasEstimator {
		simulationManager := NewSimulationManager(client.RpcClient())
		logger := client.Logger().ApplyPrefix("[gas]")

		return func(ctx context.Context, signedTx *txtypes.TxRaw, gasAdjustment float64) (*GasEstimate, error) {
			if err := gasPrice.Validate(); err != nil {
				return nil, fmt.Errorf("%w: invalid gas price: %w", ErrEstimation, err)
			}

			result, err := simulationManager.SimulateTx(ctx, signedTx, gasAdjustment)
			if err != nil {
				logger.Error("simulation failed", "error", err)
				return nil, classify(ErrEstimation, err)
			}

			estimate := &GasEstimate{
				GasLimit:      result.GasRecommendation,
				FeeAmount:     FeeForGas(gasPrice, result.GasRecommendation),
				FeeAdjustment: gasAdjustment,
			}
			logger.Debug("simulated transaction", "gas_used", result.GasUsed, "gas_limit", estimate.GasLimit, "fee", estimate.FeeAmount.String())

			return estimate, nil
		}
	}
}

// FloatingGasPrice keeps the gas limit found by delegate and re-prices it with the current price from source.
func FloatingGasPrice(source gasprice.Source, delegate GasEstimationMethod) GasEstimationMethod {
	return func(client *Client) GasEstimator {
		estimator := delegate(client)
		logger := client.Logger().ApplyPrefix("[gas]")

		return func(ctx context.Context, signedTx *txtypes.TxRaw, gasAdjustment float64) (*GasEstimate, error) {
			estimate, err := estimator(ctx, signedTx, gasAdjustment)
			if err != nil {
				return nil, err
			}

			gasPrice, err := source.GasPrice(ctx)
			if err != nil {
				logger.Error("failed to get floating gas price", "error", err)
				return nil, classify(ErrEstimation, fmt.Errorf("fetching gas price: %w", err))
			}
			if err := gasPrice.Validate(); err != nil {
				return nil, fmt.Errorf("%w: invalid gas price: %w", ErrEstimation, err)
			}

			repriced := &GasEstimate{
				GasLimit:      estimate.GasLimit,
				FeeAmount:     FeeForGas(gasPrice, estimate.GasLimit),
				FeeAdjustment: estimate.FeeAdjustment,
			}
			logger.Debug("applied floating gas price", "gas_price", gasPrice.String(), "fee", repriced.FeeAmount.String())

			return repriced, nil
		}
	}
}

// FixedGas skips simulation and always returns the given limit and fee. The adjustment is recorded but not
// applied.
func FixedGas(gasLimit uint64, fee sdk.Coins) GasEstimationMethod {
	return func(_ *Client) GasEstimator {
		return func(_ context.Context, _ *txtypes.TxRaw, gasAdjustment float64) (*GasEstimate, error) {
			if err := fee.Validate(); err != nil {
				return nil, fmt.Errorf("%w: invalid fixed fee: %w", ErrEstimation, err)
			}

			return &GasEstimate{
				GasLimit:      gasLimit,
				FeeAmount:     fee,
				FeeAdjustment: gasAdjustment,
			}, nil
		}
	}
}

// FeeForGas is ceil(gasLimit * gasPrice) in the denom of the price.
func FeeForGas(gasPrice sdk.DecCoin, gasLimit uint64) sdk.Coins {
	amount := gasPrice.Amount.MulInt(math.NewIntFromUint64(gasLimit)).Ceil().TruncateInt()
	return sdk.NewCoins(sdk.NewCoin(gasPrice.Denom, amount))
}
