package gasprice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tessellated-io/txpipe/log"

	"cosmossdk.io/math"
	retry "github.com/avast/retry-go/v4"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// oracleResponse is the body served by a gas price oracle, ex. {"gasPrice": 19050, "gasPriceDenom": "nhash"}
type oracleResponse struct {
	GasPrice      json.Number `json:"gasPrice"`
	GasPriceDenom string      `json:"gasPriceDenom"`
}

// OracleClient fetches gas prices from an HTTP endpoint. Prices are cached for a TTL; an expired price is never
// served, a failed refresh is returned to the caller.
type OracleClient struct {
	url        string
	ttl        time.Duration
	httpClient *http.Client

	attempts retry.Option
	delay    retry.Option

	store  PriceStore
	logger *log.Logger
}

var _ Source = (*OracleClient)(nil)

func NewOracleClient(
	url string,
	attempts uint,
	delay time.Duration,
	ttl time.Duration,
	store PriceStore,
	logger *log.Logger,
) (*OracleClient, error) {
	if url == "" {
		return nil, errors.New("gas price oracle url is empty")
	}
	if attempts == 0 {
		return nil, errors.New("gas price oracle needs at least one attempt")
	}
	if store == nil {
		store = NewInMemoryPriceStore()
	}

	return &OracleClient{
		url:        url,
		ttl:        ttl,
		httpClient: &http.Client{Timeout: 10 * time.Second},

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		store:  store,
		logger: logger.ApplyPrefix("[gas-oracle]"),
	}, nil
}

func (oc *OracleClient) GasPrice(ctx context.Context) (sdk.DecCoin, error) {
	cached, observedAt, err := oc.store.GetGasPrice(oc.url)
	if err == nil && time.Since(observedAt) < oc.ttl {
		oc.logger.Debug("using cached gas price", "gas_price", cached.String(), "age", time.Since(observedAt).String())
		return cached, nil
	}

	var gasPrice sdk.DecCoin
	err = retry.Do(func() error {
		gasPrice, err = oc.fetchGasPrice(ctx)
		return err
	}, oc.delay, oc.attempts, retry.Context(ctx))
	if err != nil {
		err = errors.Unwrap(err)
		oc.logger.Error("failed to fetch gas price", "url", oc.url, "error", err)
		return sdk.DecCoin{}, err
	}

	if err := oc.store.SetGasPrice(oc.url, gasPrice); err != nil {
		return sdk.DecCoin{}, err
	}
	oc.logger.Debug("fetched gas price", "gas_price", gasPrice.String())

	return gasPrice, nil
}

// Internal method without retries
func (oc *OracleClient) fetchGasPrice(ctx context.Context) (sdk.DecCoin, error) {
	bytes, err := oc.makeRequest(ctx)
	if err != nil {
		return sdk.DecCoin{}, err
	}

	return parseOracleResponse(bytes)
}

func (oc *OracleClient) makeRequest(ctx context.Context) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, oc.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := oc.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func parseOracleResponse(bytes []byte) (sdk.DecCoin, error) {
	var response oracleResponse
	if err := json.Unmarshal(bytes, &response); err != nil {
		return sdk.DecCoin{}, err
	}
	if response.GasPrice == "" || response.GasPriceDenom == "" {
		return sdk.DecCoin{}, fmt.Errorf("malformed gas price response: %s", string(bytes))
	}

	amount, err := math.LegacyNewDecFromStr(response.GasPrice.String())
	if err != nil {
		return sdk.DecCoin{}, fmt.Errorf("invalid gas price %q: %w", response.GasPrice, err)
	}

	gasPrice := sdk.DecCoin{Denom: response.GasPriceDenom, Amount: amount}
	if err := gasPrice.Validate(); err != nil {
		return sdk.DecCoin{}, err
	}
	return gasPrice, nil
}
