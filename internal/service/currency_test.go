package service

import (
	"context"
	"errors"
	"testing"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type staticRateProvider struct {
	rates map[string]decimal.Decimal
	err   error
	calls int
}

func (p *staticRateProvider) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.rates, nil
}

type CurrencyServiceSuite struct {
	testutil.BaseServiceTestSuite
	provider *staticRateProvider
	service  CurrencyService
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceSuite))
}

func (s *CurrencyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.provider = &staticRateProvider{
		rates: map[string]decimal.Decimal{
			"usd": decimal.NewFromInt(1),
			"eur": decimal.RequireFromString("0.5"),
			"gbp": decimal.RequireFromString("0.8"),
		},
	}
	s.service = NewCurrencyServiceWithProvider(testParams(&s.BaseServiceTestSuite), s.provider)
}

func (s *CurrencyServiceSuite) TestConvertPivotsThroughBase() {
	resp, err := s.service.Convert(s.GetContext(), dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(100),
		From:   "USD",
		To:     "EUR",
	})
	s.Require().NoError(err)
	s.True(resp.Converted.Equal(decimal.NewFromInt(50)))
	s.Equal("usd", resp.From)
	s.Equal("eur", resp.To)
	s.Equal("€50.00", resp.Formatted)
}

func (s *CurrencyServiceSuite) TestConvertBetweenNonBaseCurrencies() {
	resp, err := s.service.Convert(s.GetContext(), dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(50),
		From:   "eur",
		To:     "gbp",
	})
	s.Require().NoError(err)
	// 50 eur -> 100 usd -> 80 gbp
	s.True(resp.Converted.Equal(decimal.NewFromInt(80)))
}

func (s *CurrencyServiceSuite) TestConvertRoundTripsWithinACent() {
	s.provider.rates["eur"] = decimal.RequireFromString("0.9237")

	there, err := s.service.Convert(s.GetContext(), dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(100),
		From:   "usd",
		To:     "eur",
	})
	s.Require().NoError(err)
	s.True(there.Converted.Equal(decimal.RequireFromString("92.37")))

	back, err := s.service.Convert(s.GetContext(), dto.ConvertCurrencyRequest{
		Amount: there.Converted,
		From:   "eur",
		To:     "usd",
	})
	s.Require().NoError(err)

	diff := back.Converted.Sub(decimal.NewFromInt(100)).Abs()
	s.True(diff.LessThanOrEqual(decimal.RequireFromString("0.01")), "round trip drifted by %s", diff)
}

func (s *CurrencyServiceSuite) TestConvertUnknownCurrency() {
	_, err := s.service.Convert(s.GetContext(), dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(10),
		From:   "usd",
		To:     "xyz",
	})
	s.Error(err)
}

func (s *CurrencyServiceSuite) TestRatesAreCached() {
	s.service.GetRates(s.GetContext())
	s.service.GetRates(s.GetContext())
	s.Equal(1, s.provider.calls)
}

func (s *CurrencyServiceSuite) TestFetchFailureFallsBackToDefaults() {
	s.provider.err = errors.New("provider down")

	resp, err := s.service.Convert(s.GetContext(), dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(100),
		From:   "usd",
		To:     "eur",
	})
	s.Require().NoError(err)
	// default eur rate is 0.92
	s.True(resp.Converted.Equal(decimal.NewFromInt(92)))
}

func (s *CurrencyServiceSuite) TestZeroDecimalFormatting() {
	// default rates carry the lek; the static provider does not
	s.provider.err = errors.New("provider down")

	resp, err := s.service.Convert(s.GetContext(), dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(100),
		From:   "usd",
		To:     "all",
	})
	s.Require().NoError(err)
	s.Equal("L9350", resp.Formatted)
}
