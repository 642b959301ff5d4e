package tx

import (
	"context"
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const codespace = "txpipe"

var (
	ErrInvalidRequest  = errorsmod.Register(codespace, 2, "invalid request")
	ErrResolution      = errorsmod.Register(codespace, 3, "account resolution failed")
	ErrAccountNotFound = errorsmod.Register(codespace, 4, "account not found")
	ErrSigning         = errorsmod.Register(codespace, 5, "signing failed")
	ErrEstimation      = errorsmod.Register(codespace, 6, "gas estimation failed")
	ErrBroadcast       = errorsmod.Register(codespace, 7, "broadcast rejected")
	ErrTransport       = errorsmod.Register(codespace, 8, "transport failure")
)

var pipelineErrors = []error{ErrInvalidRequest, ErrResolution, ErrSigning, ErrEstimation, ErrBroadcast, ErrTransport}

// classify tags err with kind, or with ErrTransport when the failure happened on the wire.
// Errors that already carry a pipeline error kind are returned unchanged.
func classify(kind error, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range pipelineErrors {
		if errors.Is(err, known) {
			return err
		}
	}

	if isTransportError(err) {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	grpcStatus, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch grpcStatus.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return true
	default:
		return false
	}
}

// Helper function to know if an error had to do with gas.
func IsGasRelatedError(codespace string, code uint32) bool {
	return IsGasPriceError(codespace, code) || isGasAmountError(codespace, code)
}

// Helper function to determine if an error is related to too small of a gas price
func IsGasPriceError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 13) || (codespace == "gaia" && code == 4)
}

// Helper function to determine if an error is related to to few gas units
func isGasAmountError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 11)
}

// IsSequenceMismatch reports whether a broadcast was rejected because the signer sequence was stale.
func IsSequenceMismatch(codespace string, code uint32) bool {
	return codespace == "sdk" && code == 32
}
