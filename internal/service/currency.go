package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/billfold/billfold/internal/api/dto"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/httpclient"
	"github.com/billfold/billfold/internal/types"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const ratesCacheKey = "exchange_rates"

// RateProvider fetches exchange rates relative to the base currency.
// Fetch failures are soft: the caller falls back to the last cached or
// the static default rates.
type RateProvider interface {
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// CurrencyService converts amounts between currencies by pivoting
// through USD. Rates come from the configured provider, are cached for
// the configured TTL, and degrade to static defaults when the provider
// is unreachable. Conversion itself never fails on rate-fetch errors.
type CurrencyService interface {
	Convert(ctx context.Context, req dto.ConvertCurrencyRequest) (*dto.ConvertCurrencyResponse, error)
	GetRates(ctx context.Context) map[string]decimal.Decimal
}

type currencyService struct {
	ServiceParams
	provider RateProvider
	cache    *gocache.Cache
}

func NewCurrencyService(params ServiceParams) CurrencyService {
	return &currencyService{
		ServiceParams: params,
		provider:      newHTTPRateProvider(params.Client, params.Config.Currency.RatesURL),
		cache:         gocache.New(params.Config.Currency.CacheTTL, 2*params.Config.Currency.CacheTTL),
	}
}

// NewCurrencyServiceWithProvider injects a rate provider, used by tests
// to avoid live fetches.
func NewCurrencyServiceWithProvider(params ServiceParams, provider RateProvider) CurrencyService {
	return &currencyService{
		ServiceParams: params,
		provider:      provider,
		cache:         gocache.New(params.Config.Currency.CacheTTL, 2*params.Config.Currency.CacheTTL),
	}
}

func (s *currencyService) Convert(ctx context.Context, req dto.ConvertCurrencyRequest) (*dto.ConvertCurrencyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from := types.NormalizeCurrency(req.From)
	to := types.NormalizeCurrency(req.To)
	rates := s.GetRates(ctx)

	fromRate, ok := rates[from]
	if !ok || !fromRate.IsPositive() {
		return nil, ierr.NewError("unsupported currency").
			WithHintf("No exchange rate available for %s", req.From).
			Mark(ierr.ErrValidation)
	}
	toRate, ok := rates[to]
	if !ok || !toRate.IsPositive() {
		return nil, ierr.NewError("unsupported currency").
			WithHintf("No exchange rate available for %s", req.To).
			Mark(ierr.ErrValidation)
	}

	// Pivot through the base currency: amount/fromRate is the USD
	// value, multiplied out by the target rate.
	converted := req.Amount.Div(fromRate).Mul(toRate).Round(2)

	return &dto.ConvertCurrencyResponse{
		Amount:    req.Amount,
		From:      from,
		To:        to,
		Converted: converted,
		Formatted: types.FormatAmount(converted, to),
	}, nil
}

// GetRates returns the current rate table. Order of preference: cached
// live rates, a fresh fetch, static defaults. Fetch errors are logged
// and swallowed.
func (s *currencyService) GetRates(ctx context.Context) map[string]decimal.Decimal {
	if cached, ok := s.cache.Get(ratesCacheKey); ok {
		return cached.(map[string]decimal.Decimal)
	}

	if s.provider != nil {
		rates, err := s.provider.FetchRates(ctx)
		if err == nil && len(rates) > 0 {
			if _, ok := rates[types.BaseCurrency]; !ok {
				rates[types.BaseCurrency] = decimal.NewFromInt(1)
			}
			s.cache.Set(ratesCacheKey, rates, gocache.DefaultExpiration)
			return rates
		}
		if err != nil {
			s.Logger.Warnw("exchange rate fetch failed, using default rates", "error", err)
		}
	}

	return types.DefaultExchangeRates
}

// httpRateProvider pulls rates from an open exchange rate API shaped
// like open.er-api.com: {"result": "success", "rates": {"EUR": 0.92}}.
type httpRateProvider struct {
	client httpclient.Client
	url    string
}

func newHTTPRateProvider(client httpclient.Client, url string) RateProvider {
	if client == nil || url == "" {
		return nil
	}
	return &httpRateProvider{client: client, url: url}
}

func (p *httpRateProvider) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	resp, err := p.client.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    p.url,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ierr.NewErrorf("rate provider returned status %d", resp.StatusCode).
			WithHint("Exchange rate provider is unavailable").
			Mark(ierr.ErrHTTPClient)
	}

	var payload struct {
		Result string                     `json:"result"`
		Rates  map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Malformed exchange rate response").
			Mark(ierr.ErrHTTPClient)
	}
	if payload.Result != "success" || len(payload.Rates) == 0 {
		return nil, ierr.NewError("rate provider returned no rates").
			Mark(ierr.ErrHTTPClient)
	}

	rates := make(map[string]decimal.Decimal, len(payload.Rates))
	for code, rate := range payload.Rates {
		rates[types.NormalizeCurrency(code)] = rate
	}
	return rates, nil
}
