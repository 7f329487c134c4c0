package service

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/client"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
)

// ClientService owns the client collection and its derived fields.
// Every mutation recomputes amount_paid, amount_due and client_status
// before the client is stored; callers can never set them directly.
type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
	MarkPaymentPaid(ctx context.Context, clientID, paymentID string, paidDate *time.Time) (*dto.ClientResponse, error)
}

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{
		ServiceParams: params,
	}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	planID := types.PaymentPlanTemplateID(req.PaymentPlanID)
	if err := planID.Validate(); err != nil {
		// An unknown template id is an integration error, not a
		// recoverable runtime condition.
		return nil, ierr.WithError(err).
			WithHintf("Unknown payment plan template %s", req.PaymentPlanID).
			Mark(ierr.ErrNotFound)
	}

	billing := NewBillingService(s.ServiceParams)
	schedule, err := billing.CalculateClientSchedule(req.AgreedPrice, planID)
	if err != nil {
		return nil, err
	}

	c := req.ToClient()
	c.Payments = make([]*client.Payment, len(schedule))
	for i, sp := range schedule {
		c.Payments[i] = &client.Payment{
			ID:                types.GenerateShortIDWithPrefix(types.UUID_PREFIX_PAYMENT + "_"),
			ClientID:          c.ID,
			Amount:            sp.Amount,
			DueDate:           sp.DueDate,
			Type:              sp.Type,
			InstallmentNumber: sp.InstallmentNumber,
		}
	}

	s.recomputeDerived(c)

	if err := c.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid client data").
			Mark(ierr.ErrValidation)
	}

	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created client",
		"client_id", c.ID,
		"payment_plan", planID,
		"payments", len(c.Payments))

	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) ListClients(ctx context.Context) (*dto.ListClientsResponse, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ClientResponse, len(clients))
	for i, c := range clients {
		items[i] = &dto.ClientResponse{Client: c}
	}
	return &dto.ListClientsResponse{Items: items, Total: len(items)}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.AgreedPrice != nil {
		c.AgreedPrice = *req.AgreedPrice
	}
	if req.Currency != nil {
		c.Currency = *req.Currency
	}
	c.UpdatedAt = time.Now().UTC()

	// Recompute always wins, regardless of what the update carried.
	s.recomputeDerived(c)

	if err := c.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid client data").
			Mark(ierr.ErrValidation)
	}

	if err := s.ClientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	return s.ClientRepo.Delete(ctx, id)
}

func (s *clientService) MarkPaymentPaid(ctx context.Context, clientID, paymentID string, paidDate *time.Time) (*dto.ClientResponse, error) {
	c, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	p, ok := c.GetPayment(paymentID)
	if !ok {
		return nil, ierr.NewError("payment not found").
			WithHintf("Client %s has no payment %s", clientID, paymentID).
			Mark(ierr.ErrNotFound)
	}

	when := time.Now().UTC()
	if paidDate != nil {
		when = paidDate.UTC()
	}
	p.PaidDate = &when
	c.UpdatedAt = time.Now().UTC()

	s.recomputeDerived(c)

	if err := s.ClientRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("marked payment paid",
		"client_id", clientID,
		"payment_id", paymentID,
		"client_status", c.ClientStatus)

	return &dto.ClientResponse{Client: c}, nil
}

// recomputeDerived refreshes the three projections of a client's
// payments: amount_paid, amount_due and client_status.
func (s *clientService) recomputeDerived(c *client.Client) {
	billing := NewBillingService(s.ServiceParams)
	c.AmountPaid = c.TotalPaid()
	c.AmountDue = c.AgreedPrice.Sub(c.AmountPaid)
	c.ClientStatus = billing.ResolveClientStatus(c)
}
