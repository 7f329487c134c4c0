package service

import (
	"strings"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClientServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ClientService
}

func TestClientService(t *testing.T) {
	suite.Run(t, new(ClientServiceSuite))
}

func (s *ClientServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewClientService(testParams(&s.BaseServiceTestSuite))
}

func (s *ClientServiceSuite) createClient(price string, plan string) *dto.ClientResponse {
	resp, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:          "Acme Corp",
		AgreedPrice:   decimal.RequireFromString(price),
		PaymentPlanID: plan,
		Currency:      "usd",
	})
	s.Require().NoError(err)
	return resp
}

func (s *ClientServiceSuite) TestCreateClientGeneratesSchedule() {
	resp := s.createClient("1000", "30-70")

	s.Require().Len(resp.Payments, 3)
	s.Equal(types.PaymentTypeRetainer, resp.Payments[0].Type)
	s.Equal(types.PaymentTypeInstallment, resp.Payments[1].Type)

	sum := decimal.Zero
	for _, p := range resp.Payments {
		sum = sum.Add(p.Amount)
	}
	s.True(sum.Equal(decimal.NewFromInt(1000)))

	s.True(resp.AmountPaid.IsZero())
	s.True(resp.AmountDue.Equal(decimal.NewFromInt(1000)))
	s.Equal(types.ClientStatusPending, resp.ClientStatus)
}

func (s *ClientServiceSuite) TestPaymentIDsAreShortAndUnique() {
	resp := s.createClient("1000", "30-35-35")

	seen := map[string]bool{}
	for _, p := range resp.Payments {
		s.True(strings.HasPrefix(p.ID, "PAY_"), "id %q", p.ID)
		s.LessOrEqual(len(p.ID), 12)
		s.False(seen[p.ID])
		seen[p.ID] = true
	}
}

func (s *ClientServiceSuite) TestCreateClientUnknownPlanFails() {
	_, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:          "Acme Corp",
		AgreedPrice:   decimal.NewFromInt(1000),
		PaymentPlanID: "40-60",
	})
	s.Error(err)

	// nothing was stored
	list, listErr := s.service.ListClients(s.GetContext())
	s.NoError(listErr)
	s.Equal(0, list.Total)
}

func (s *ClientServiceSuite) TestMarkPaymentPaidRecomputesDerived() {
	created := s.createClient("1000", "30-70")
	retainer := created.Payments[0]

	resp, err := s.service.MarkPaymentPaid(s.GetContext(), created.ID, retainer.ID, nil)
	s.Require().NoError(err)

	s.True(resp.AmountPaid.Equal(decimal.NewFromInt(100)))
	s.True(resp.AmountDue.Equal(decimal.NewFromInt(900)))
	s.NotNil(resp.Payments[0].PaidDate)
}

func (s *ClientServiceSuite) TestMarkAllPaymentsPaidMakesClientPaid() {
	created := s.createClient("1000", "30-70")

	var resp *dto.ClientResponse
	var err error
	for _, p := range created.Payments {
		resp, err = s.service.MarkPaymentPaid(s.GetContext(), created.ID, p.ID, nil)
		s.Require().NoError(err)
	}

	s.Equal(types.ClientStatusPaid, resp.ClientStatus)
	s.True(resp.AmountDue.IsZero())
}

func (s *ClientServiceSuite) TestMarkPaymentPaidHonorsPaidDate() {
	created := s.createClient("1000", "30-70")
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	resp, err := s.service.MarkPaymentPaid(s.GetContext(), created.ID, created.Payments[1].ID, &when)
	s.Require().NoError(err)
	s.True(resp.Payments[1].PaidDate.Equal(when))
}

func (s *ClientServiceSuite) TestMarkPaymentPaidUnknownPayment() {
	created := s.createClient("1000", "30-70")

	_, err := s.service.MarkPaymentPaid(s.GetContext(), created.ID, "nope", nil)
	s.Error(err)
}

func (s *ClientServiceSuite) TestUpdateClientRecomputesStatus() {
	created := s.createClient("1000", "30-70")

	_, err := s.service.MarkPaymentPaid(s.GetContext(), created.ID, created.Payments[0].ID, nil)
	s.Require().NoError(err)

	// lowering the price under what is already paid flips the client
	// to paid even though no new payment arrived
	newPrice := decimal.NewFromInt(100)
	resp, err := s.service.UpdateClient(s.GetContext(), created.ID, dto.UpdateClientRequest{
		AgreedPrice: &newPrice,
	})
	s.Require().NoError(err)

	s.Equal(types.ClientStatusPaid, resp.ClientStatus)
	s.True(resp.AmountDue.IsZero())
}

func (s *ClientServiceSuite) TestDeleteClient() {
	created := s.createClient("1000", "30-35-35")

	s.NoError(s.service.DeleteClient(s.GetContext(), created.ID))

	_, err := s.service.GetClient(s.GetContext(), created.ID)
	s.Error(err)
}

func (s *ClientServiceSuite) TestListClientsPreservesOrder() {
	first := s.createClient("100", "30-70")
	second := s.createClient("200", "30-70")

	list, err := s.service.ListClients(s.GetContext())
	s.Require().NoError(err)
	s.Require().Equal(2, list.Total)
	s.Equal(first.ID, list.Items[0].ID)
	s.Equal(second.ID, list.Items[1].ID)
}
