package service

import (
	"testing"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ContractServiceSuite struct {
	testutil.BaseServiceTestSuite
	service   ContractService
	clients   ClientService
	invoices  InvoiceService
	templates TemplateService
}

func TestContractService(t *testing.T) {
	suite.Run(t, new(ContractServiceSuite))
}

func (s *ContractServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := testParams(&s.BaseServiceTestSuite)
	s.service = NewContractService(params)
	s.clients = NewClientService(params)
	s.invoices = NewInvoiceService(params)
	s.templates = NewTemplateService(params)
}

func (s *ContractServiceSuite) createClient() *dto.ClientResponse {
	resp, err := s.clients.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:          "Acme Corp",
		AgreedPrice:   decimal.NewFromInt(10000),
		PaymentPlanID: "30-70",
		Currency:      "usd",
	})
	s.Require().NoError(err)
	return resp
}

func (s *ContractServiceSuite) createDefaultTemplate() *dto.TemplateResponse {
	resp, err := s.templates.CreateTemplate(s.GetContext(), dto.CreateTemplateRequest{
		Name:         "Standard",
		CompanyName:  "Billfold Studio",
		CompanyEmail: "billing@billfold.dev",
	})
	s.Require().NoError(err)
	return resp
}

func (s *ContractServiceSuite) installmentPlan() *contract.PaymentPlan {
	return &contract.PaymentPlan{
		Structure: types.PaymentStructureInstallments,
		Installments: []*contract.Installment{
			{ID: "item_1", Percentage: decimal.NewFromInt(50)},
			{ID: "item_2", Percentage: decimal.NewFromInt(50)},
		},
	}
}

func (s *ContractServiceSuite) TestGenerateContractDefaults() {
	cl := s.createClient()

	resp, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(5000),
	})
	s.Require().NoError(err)

	s.Equal("usd", resp.Settings.Currency)
	s.Equal(types.DefaultDateFormat, resp.Settings.DateFormat)
	s.Equal(types.ContractSizeA4, resp.Settings.ContractSize)
	s.Equal(types.PaymentStructureSimple, resp.Settings.PaymentStructure)
	s.False(resp.Settings.Discount.Enabled)
	s.False(resp.Settings.Tax.Enabled)
	s.Equal(types.ContractStatusCreated, resp.ContractStatus)
	s.NotEmpty(resp.ShareToken)
	s.Empty(resp.InvoiceIDs)
}

func (s *ContractServiceSuite) TestContractNumberingPerYear() {
	cl := s.createClient()
	year := time.Now().UTC().Year()

	for i := 1; i <= 2; i++ {
		resp, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
			ClientID:  cl.ID,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		})
		s.Require().NoError(err)
		s.Equal(types.FormatContractNumber(year, int64(i)), resp.ContractNumber)
	}
}

func (s *ContractServiceSuite) TestGenerateContractWithPlanCreatesInvoices() {
	cl := s.createClient()
	s.createDefaultTemplate()

	resp, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(10000),
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)
	s.Require().Len(resp.InvoiceIDs, 2)

	// installment amounts were recomputed from the project cost
	s.True(resp.PaymentPlan.Installments[0].Amount.Equal(decimal.NewFromInt(5000)))

	first, err := s.invoices.GetInvoice(s.GetContext(), resp.InvoiceIDs[0])
	s.Require().NoError(err)
	s.Equal("INV-0001", first.InvoiceNumber)
	s.Equal(cl.ID, first.ClientID)
	s.Equal("Billfold Studio", first.CompanyName)
	s.Require().NotNil(first.ContractID)
	s.Equal(resp.ID, *first.ContractID)
	s.True(first.Total.Equal(decimal.NewFromInt(5000)))

	// undated installments spread evenly across the project span,
	// truncated to day granularity
	s.True(first.DueDate.Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		"got %s", first.DueDate)

	second, err := s.invoices.GetInvoice(s.GetContext(), resp.InvoiceIDs[1])
	s.Require().NoError(err)
	s.True(second.DueDate.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
		"got %s", second.DueDate)
}

func (s *ContractServiceSuite) TestGenerateContractWithoutTemplateSkipsInvoices() {
	cl := s.createClient()

	resp, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(10000),
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)
	s.Empty(resp.InvoiceIDs)
}

func (s *ContractServiceSuite) TestPercentagePlanWithoutCostSkipsInvoices() {
	cl := s.createClient()
	s.createDefaultTemplate()

	resp, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)
	s.Empty(resp.InvoiceIDs)
}

func (s *ContractServiceSuite) TestContractTotalsSnapshot() {
	cl := s.createClient()

	resp, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(1000),
		Settings: &contract.Settings{
			Currency:         "usd",
			PaymentStructure: types.PaymentStructureSimple,
			Discount: contract.DiscountSettings{
				Enabled: true,
				Type:    types.DiscountTypePercentage,
				Value:   decimal.NewFromInt(10),
			},
			Tax: contract.TaxSettings{
				Enabled: true,
				Type:    types.TaxTypeVAT,
				Percent: decimal.NewFromInt(20),
			},
		},
	})
	s.Require().NoError(err)
	s.True(resp.DiscountAmount.Equal(decimal.NewFromInt(100)))
	s.True(resp.TaxAmount.Equal(decimal.NewFromInt(180)))
}

func (s *ContractServiceSuite) TestUpdatePlanRegeneratesInvoices() {
	cl := s.createClient()
	s.createDefaultTemplate()

	created, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(10000),
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)
	s.Require().Len(created.InvoiceIDs, 2)
	oldIDs := created.InvoiceIDs

	newPlan := &contract.PaymentPlan{
		Structure: types.PaymentStructureCustom,
		CustomPayments: []*contract.CustomPayment{
			{ID: "item_1", Amount: decimal.NewFromInt(4000), Description: "Kickoff"},
		},
	}
	updated, err := s.service.UpdateContract(s.GetContext(), created.ID, dto.UpdateContractRequest{
		PaymentPlan: newPlan,
	})
	s.Require().NoError(err)
	s.Require().Len(updated.InvoiceIDs, 1)
	s.NotContains(oldIDs, updated.InvoiceIDs[0])

	// old invoices are gone
	for _, id := range oldIDs {
		_, err := s.invoices.GetInvoice(s.GetContext(), id)
		s.Error(err)
	}
}

func (s *ContractServiceSuite) TestUpdateUnrelatedFieldKeepsInvoices() {
	cl := s.createClient()
	s.createDefaultTemplate()

	created, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(10000),
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)

	terms := "Net 30"
	updated, err := s.service.UpdateContract(s.GetContext(), created.ID, dto.UpdateContractRequest{
		Terms: &terms,
	})
	s.Require().NoError(err)
	s.Equal(created.InvoiceIDs, updated.InvoiceIDs)
}

func (s *ContractServiceSuite) TestResubmittingEqualPlanKeepsInvoices() {
	cl := s.createClient()
	s.createDefaultTemplate()

	created, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(10000),
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateContract(s.GetContext(), created.ID, dto.UpdateContractRequest{
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)
	s.Equal(created.InvoiceIDs, updated.InvoiceIDs)
}

func (s *ContractServiceSuite) TestUpdateContractStatusNormalizesDraft() {
	cl := s.createClient()

	created, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:  cl.ID,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)

	resp, err := s.service.UpdateContractStatus(s.GetContext(), created.ID, dto.UpdateContractStatusRequest{
		Status: "draft",
	})
	s.Require().NoError(err)
	s.Equal(types.ContractStatusCreated, resp.ContractStatus)
}

func (s *ContractServiceSuite) TestGetContractByShareToken() {
	cl := s.createClient()

	created, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:  cl.ID,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)

	resp, err := s.service.GetContractByShareToken(s.GetContext(), created.ShareToken)
	s.Require().NoError(err)
	s.Equal(created.ID, resp.ID)

	_, err = s.service.GetContractByShareToken(s.GetContext(), "bogus")
	s.Error(err)
}

func (s *ContractServiceSuite) TestDeleteContractRemovesInvoices() {
	cl := s.createClient()
	s.createDefaultTemplate()

	created, err := s.service.GenerateContract(s.GetContext(), dto.GenerateContractRequest{
		ClientID:    cl.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProjectCost: decimal.NewFromInt(10000),
		PaymentPlan: s.installmentPlan(),
	})
	s.Require().NoError(err)
	s.Require().Len(created.InvoiceIDs, 2)

	s.NoError(s.service.DeleteContract(s.GetContext(), created.ID))

	for _, id := range created.InvoiceIDs {
		_, err := s.invoices.GetInvoice(s.GetContext(), id)
		s.Error(err)
	}
}
