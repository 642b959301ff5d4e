package tx

import (
	"context"
	"fmt"
	"math"

	"github.com/tessellated-io/txpipe/cosmos/rpc"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// SimulationManager manages simulating gas from transactions.
type SimulationManager interface {
	SimulateTx(ctx context.Context, tx *txtypes.TxRaw, gasFactor float64) (*SimulationResult, error)
	SimulateTxBytes(ctx context.Context, txBytes []byte, gasFactor float64) (*SimulationResult, error)
}

// simulationManager is the default implementation
type simulationManager struct {
	rpcClient rpc.Client
}

// Ensure type conformance
var _ SimulationManager = (*simulationManager)(nil)

// NewSimulationManager makes a new default simulationManager
func NewSimulationManager(rpcClient rpc.Client) SimulationManager {
	return &simulationManager{
		rpcClient: rpcClient,
	}
}

func (sm *simulationManager) SimulateTx(ctx context.Context, tx *txtypes.TxRaw, gasFactor float64) (*SimulationResult, error) {
	// A TxRaw encodes to the same bytes as the Tx it was built from
	txBytes, err := tx.Marshal()
	if err != nil {
		return nil, err
	}

	return sm.SimulateTxBytes(ctx, txBytes, gasFactor)
}

func (sm *simulationManager) SimulateTxBytes(ctx context.Context, txBytes []byte, gasFactor float64) (*SimulationResult, error) {
	if gasFactor <= 0 || math.IsNaN(gasFactor) || math.IsInf(gasFactor, 0) {
		return nil, fmt.Errorf("gas factor must be positive, got %v", gasFactor)
	}

	simulationResponse, err := sm.rpcClient.Simulate(ctx, txBytes)
	if err != nil {
		return nil, err
	}

	if simulationResponse == nil || simulationResponse.GasInfo == nil {
		return nil, fmt.Errorf("%w: simulation returned no gas info", ErrEstimation)
	}

	gasUsed := simulationResponse.GasInfo.GasUsed
	recommendation := math.Ceil(float64(gasUsed) * gasFactor)
	if recommendation >= math.MaxUint64 {
		return nil, fmt.Errorf("%w: gas recommendation for %d gas with factor %v overflows", ErrEstimation, gasUsed, gasFactor)
	}

	return &SimulationResult{
		GasUsed:           gasUsed,
		GasRecommendation: uint64(recommendation),
	}, nil
}
