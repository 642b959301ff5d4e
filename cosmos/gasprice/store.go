package gasprice

import (
	"errors"
	"sync"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var ErrNoGasPrice = errors.New("no gas price found")

// PriceStore is a simple KV store for observed gas prices.
type PriceStore interface {
	// GetGasPrice returns the price stored under key and when it was stored.
	GetGasPrice(key string) (sdk.DecCoin, time.Time, error)
	SetGasPrice(key string, gasPrice sdk.DecCoin) error
}

// InMemoryPriceStore stores gas prices in memory.
type InMemoryPriceStore struct {
	prices   map[string]storedPrice
	observed func() time.Time

	lock *sync.Mutex
}

type storedPrice struct {
	price      sdk.DecCoin
	observedAt time.Time
}

var _ PriceStore = (*InMemoryPriceStore)(nil)

func NewInMemoryPriceStore() *InMemoryPriceStore {
	return &InMemoryPriceStore{
		prices:   make(map[string]storedPrice),
		observed: time.Now,

		lock: &sync.Mutex{},
	}
}

func (ps *InMemoryPriceStore) GetGasPrice(key string) (sdk.DecCoin, time.Time, error) {
	ps.lock.Lock()
	defer ps.lock.Unlock()

	stored, found := ps.prices[key]
	if !found {
		return sdk.DecCoin{}, time.Time{}, ErrNoGasPrice
	}

	return stored.price, stored.observedAt, nil
}

func (ps *InMemoryPriceStore) SetGasPrice(key string, gasPrice sdk.DecCoin) error {
	ps.lock.Lock()
	defer ps.lock.Unlock()

	ps.prices[key] = storedPrice{
		price:      gasPrice,
		observedAt: ps.observed(),
	}
	return nil
}
