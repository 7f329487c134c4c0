package service

import (
	"testing"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TimelineServiceSuite struct {
	testutil.BaseServiceTestSuite
	service   TimelineService
	clients   ClientService
	contracts ContractService
	invoices  InvoiceService
	templates TemplateService
}

func TestTimelineService(t *testing.T) {
	suite.Run(t, new(TimelineServiceSuite))
}

func (s *TimelineServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := testParams(&s.BaseServiceTestSuite)
	s.service = NewTimelineService(params)
	s.clients = NewClientService(params)
	s.contracts = NewContractService(params)
	s.invoices = NewInvoiceService(params)
	s.templates = NewTemplateService(params)
}

func (s *TimelineServiceSuite) createClient() *dto.ClientResponse {
	resp, err := s.clients.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:          "Acme Corp",
		AgreedPrice:   decimal.NewFromInt(1000),
		PaymentPlanID: "30-70",
		Currency:      "usd",
	})
	s.Require().NoError(err)
	return resp
}

func (s *TimelineServiceSuite) TestTimelineFromSchedulePayments() {
	cl := s.createClient()

	resp, err := s.service.GetClientTimeline(s.GetContext(), cl.ID)
	s.Require().NoError(err)
	s.Require().Equal(3, resp.Total)

	// ascending by due date: retainer today, then the two installments
	s.Equal(types.TimelineEventKindPayment, resp.Events[0].Kind)
	s.Equal("Retainer", resp.Events[0].Description)
	s.Equal("Installment 1", resp.Events[1].Description)
	s.Equal("Installment 2", resp.Events[2].Description)

	for i := 1; i < len(resp.Events); i++ {
		s.False(resp.Events[i].DueDate.Before(resp.Events[i-1].DueDate))
	}

	// nothing is paid yet and nothing is overdue
	for _, e := range resp.Events {
		s.Equal(types.TimelineEventStatusPending, e.Status)
	}
}

func (s *TimelineServiceSuite) TestPaidScheduleEventIsPaid() {
	cl := s.createClient()

	_, err := s.clients.MarkPaymentPaid(s.GetContext(), cl.ID, cl.Payments[0].ID, nil)
	s.Require().NoError(err)

	resp, err := s.service.GetClientTimeline(s.GetContext(), cl.ID)
	s.Require().NoError(err)
	s.Equal(types.TimelineEventStatusPaid, resp.Events[0].Status)
}

func (s *TimelineServiceSuite) TestPlanItemsMergeIntoTimeline() {
	cl := s.createClient()

	due := time.Now().UTC().AddDate(0, 1, 0)
	_, err := s.contracts.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:  cl.ID,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().AddDate(0, 6, 0),
		PaymentPlan: &contract.PaymentPlan{
			Structure: types.PaymentStructureCustom,
			CustomPayments: []*contract.CustomPayment{
				{ID: "item_1", Amount: decimal.NewFromInt(400), DueDate: &due, Description: "Kickoff"},
				{ID: "item_skip", Amount: decimal.Zero, Description: "Placeholder"},
			},
		},
	})
	s.Require().NoError(err)

	resp, err := s.service.GetClientTimeline(s.GetContext(), cl.ID)
	s.Require().NoError(err)

	// 3 schedule payments + 1 custom item; the zero-amount item is skipped
	s.Require().Equal(4, resp.Total)

	var custom *dto.PaymentTimelineEvent
	for _, e := range resp.Events {
		if e.Kind == types.TimelineEventKindCustom {
			custom = e
		}
	}
	s.Require().NotNil(custom)
	s.Equal("Kickoff", custom.Description)
	s.True(custom.Amount.Equal(decimal.NewFromInt(400)))
	s.Equal(types.TimelineEventStatusPending, custom.Status)
}

func (s *TimelineServiceSuite) TestLinkedInvoiceStatusWins() {
	cl := s.createClient()

	_, err := s.templates.CreateTemplate(s.GetContext(), dto.CreateTemplateRequest{
		Name:        "Standard",
		CompanyName: "Billfold Studio",
	})
	s.Require().NoError(err)

	con, err := s.contracts.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Now().UTC(),
		EndDate:     time.Now().UTC().AddDate(0, 6, 0),
		ProjectCost: decimal.NewFromInt(1000),
		PaymentPlan: &contract.PaymentPlan{
			Structure: types.PaymentStructureInstallments,
			Installments: []*contract.Installment{
				{ID: "item_1", Percentage: decimal.NewFromInt(100)},
			},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(con.InvoiceIDs, 1)

	_, err = s.invoices.UpdateInvoiceStatus(s.GetContext(), con.InvoiceIDs[0], dto.UpdateInvoiceStatusRequest{
		Status: "paid",
	})
	s.Require().NoError(err)

	resp, err := s.service.GetClientTimeline(s.GetContext(), cl.ID)
	s.Require().NoError(err)

	var item *dto.PaymentTimelineEvent
	for _, e := range resp.Events {
		if e.Kind == types.TimelineEventKindInstallment {
			item = e
		}
	}
	s.Require().NotNil(item)
	s.Equal(con.InvoiceIDs[0], item.InvoiceID)
	s.Equal(types.TimelineEventStatusPaid, item.Status)
}

func (s *TimelineServiceSuite) TestLinkedInvoiceKeepsItemDueDate() {
	cl := s.createClient()

	_, err := s.templates.CreateTemplate(s.GetContext(), dto.CreateTemplateRequest{
		Name:        "Standard",
		CompanyName: "Billfold Studio",
	})
	s.Require().NoError(err)

	start := time.Now().UTC()
	con, err := s.contracts.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   start,
		EndDate:     start.AddDate(0, 6, 0),
		ProjectCost: decimal.NewFromInt(1000),
		PaymentPlan: &contract.PaymentPlan{
			Structure: types.PaymentStructureInstallments,
			Installments: []*contract.Installment{
				{ID: "item_1", Percentage: decimal.NewFromInt(100)},
			},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(con.InvoiceIDs, 1)

	// the generated invoice is due at the end of the spread, but the
	// timeline event keeps the item-derived date (contract start here,
	// since the installment has no explicit due date)
	inv, err := s.invoices.GetInvoice(s.GetContext(), con.InvoiceIDs[0])
	s.Require().NoError(err)
	s.True(inv.DueDate.After(start))

	resp, err := s.service.GetClientTimeline(s.GetContext(), cl.ID)
	s.Require().NoError(err)

	var item *dto.PaymentTimelineEvent
	for _, e := range resp.Events {
		if e.Kind == types.TimelineEventKindInstallment {
			item = e
		}
	}
	s.Require().NotNil(item)
	s.Equal(con.InvoiceIDs[0], item.InvoiceID)
	s.True(item.DueDate.Equal(types.BeginningOfDay(start)))
	s.Equal(types.TimelineEventStatusPending, item.Status)
}

func (s *TimelineServiceSuite) TestUnpaidLinkedInvoiceOverdueByItemDate() {
	cl := s.createClient()

	_, err := s.templates.CreateTemplate(s.GetContext(), dto.CreateTemplateRequest{
		Name:        "Standard",
		CompanyName: "Billfold Studio",
	})
	s.Require().NoError(err)

	// contract started two months ago, so the item-derived date is past
	// while the generated invoice is due in the future
	start := time.Now().UTC().AddDate(0, -2, 0)
	con, err := s.contracts.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   start,
		EndDate:     start.AddDate(0, 6, 0),
		ProjectCost: decimal.NewFromInt(1000),
		PaymentPlan: &contract.PaymentPlan{
			Structure: types.PaymentStructureInstallments,
			Installments: []*contract.Installment{
				{ID: "item_1", Percentage: decimal.NewFromInt(100)},
			},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(con.InvoiceIDs, 1)

	resp, err := s.service.GetClientTimeline(s.GetContext(), cl.ID)
	s.Require().NoError(err)

	var item *dto.PaymentTimelineEvent
	for _, e := range resp.Events {
		if e.Kind == types.TimelineEventKindInstallment {
			item = e
		}
	}
	s.Require().NotNil(item)
	s.Equal(types.TimelineEventStatusOverdue, item.Status)
}

func (s *TimelineServiceSuite) TestZeroAmountLegacyPaymentListed() {
	cl := &client.Client{
		ID:          "client_legacy",
		Name:        "Initech",
		AgreedPrice: decimal.NewFromInt(500),
		Payments: []*client.Payment{
			{
				ID:       "client_legacy_pay_1",
				ClientID: "client_legacy",
				Amount:   decimal.Zero,
				DueDate:  time.Now().UTC().AddDate(0, 0, 7),
				Type:     types.PaymentTypeRetainer,
			},
		},
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.Require().NoError(s.GetRegistry().Clients.Create(s.GetContext(), cl))

	resp, err := s.service.GetClientTimeline(s.GetContext(), cl.ID)
	s.Require().NoError(err)
	s.Require().Equal(1, resp.Total)
	s.True(resp.Events[0].Amount.IsZero())
	s.Equal(types.TimelineEventStatusPending, resp.Events[0].Status)
}

func (s *TimelineServiceSuite) TestGlobalTimelineSpansClients() {
	first := s.createClient()

	second, err := s.clients.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:          "Globex",
		AgreedPrice:   decimal.NewFromInt(500),
		PaymentPlanID: "30-35-35",
	})
	s.Require().NoError(err)

	resp, err := s.service.GetTimeline(s.GetContext())
	s.Require().NoError(err)
	s.Equal(7, resp.Total)

	seen := map[string]bool{}
	for _, e := range resp.Events {
		seen[e.ClientID] = true
	}
	s.True(seen[first.ID])
	s.True(seen[second.ID])
}
