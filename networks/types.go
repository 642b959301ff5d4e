package networks

import (
	"github.com/tessellated-io/txpipe/crypto"
)

// NetworkData is what a client needs to know to transact on a network without asking anyone.
type NetworkData struct {
	Name    string
	ChainID string

	// Key derivation and address encoding
	Network crypto.NetworkType

	FeeDenom string
	// Decimal price of one unit of gas in FeeDenom
	GasPrice string

	GrpcUrl string
}
