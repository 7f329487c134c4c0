package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// TimelineService builds the unified payment timeline: legacy client
// schedule payments merged with contract payment plan items, each
// resolved to a paid/pending/overdue status. The timeline is derived
// on every call and never stored.
type TimelineService interface {
	GetClientTimeline(ctx context.Context, clientID string) (*dto.TimelineResponse, error)
	GetTimeline(ctx context.Context) (*dto.TimelineResponse, error)
}

type timelineService struct {
	ServiceParams
	billing BillingService
}

func NewTimelineService(params ServiceParams) TimelineService {
	return &timelineService{
		ServiceParams: params,
		billing:       NewBillingService(params),
	}
}

func (s *timelineService) GetClientTimeline(ctx context.Context, clientID string) (*dto.TimelineResponse, error) {
	cl, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	events, err := s.buildClientEvents(ctx, cl)
	if err != nil {
		return nil, err
	}
	sortEvents(events)
	return &dto.TimelineResponse{Events: events, Total: len(events)}, nil
}

func (s *timelineService) GetTimeline(ctx context.Context) (*dto.TimelineResponse, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var events []*dto.PaymentTimelineEvent
	for _, cl := range clients {
		clientEvents, err := s.buildClientEvents(ctx, cl)
		if err != nil {
			return nil, err
		}
		events = append(events, clientEvents...)
	}
	sortEvents(events)
	return &dto.TimelineResponse{Events: events, Total: len(events)}, nil
}

func (s *timelineService) buildClientEvents(ctx context.Context, cl *client.Client) ([]*dto.PaymentTimelineEvent, error) {
	now := time.Now().UTC()
	var events []*dto.PaymentTimelineEvent

	// Legacy payments map 1:1 to events; only plan items have the
	// positive-amount skip rule.
	for _, p := range cl.Payments {
		desc := "Retainer"
		if p.Type == types.PaymentTypeInstallment {
			desc = fmt.Sprintf("Installment %d", p.InstallmentNumber)
		}
		events = append(events, &dto.PaymentTimelineEvent{
			ID:          p.ID,
			ClientID:    cl.ID,
			ClientName:  cl.Name,
			Kind:        types.TimelineEventKindPayment,
			Description: desc,
			Amount:      p.Amount,
			DueDate:     p.DueDate,
			Status:      paymentStatus(p, now),
		})
	}

	contracts, err := s.ContractRepo.ListByClient(ctx, cl.ID)
	if err != nil {
		return nil, err
	}

	for _, con := range contracts {
		if con.PaymentPlan == nil || !con.PaymentPlan.HasItems() {
			continue
		}

		invoices, err := s.InvoiceRepo.ListByContract(ctx, con.ID)
		if err != nil {
			return nil, err
		}
		byItem := make(map[string]*invoice.Invoice, len(invoices))
		for _, inv := range invoices {
			if inv.PaymentPlanItemID != nil {
				byItem[*inv.PaymentPlanItemID] = inv
			}
		}

		plan := con.PaymentPlan
		if plan.Structure.IsPercentageBased() && con.ProjectCost.IsPositive() {
			plan = s.billing.RecalculatePaymentPlan(con.ProjectCost, plan)
		}

		events = append(events, s.planEvents(cl, con, plan, byItem, now)...)
	}

	return events, nil
}

// planEvents synthesizes one event per plan item carrying a positive
// amount. When an invoice was generated from the item, the invoice's
// paid state wins; the due date stays item-derived either way.
func (s *timelineService) planEvents(
	cl *client.Client,
	con *contract.Contract,
	plan *contract.PaymentPlan,
	byItem map[string]*invoice.Invoice,
	now time.Time,
) []*dto.PaymentTimelineEvent {
	var events []*dto.PaymentTimelineEvent

	add := func(kind types.TimelineEventKind, itemID string, amount decimal.Decimal, due *time.Time, desc string) {
		if !amount.IsPositive() {
			return
		}

		dueDate := con.StartDate
		if due != nil {
			dueDate = *due
		}
		dueDate = types.BeginningOfDay(dueDate)

		event := &dto.PaymentTimelineEvent{
			ID:          types.FormatPlanEventID(con.ID, kind, itemID),
			ClientID:    cl.ID,
			ClientName:  cl.Name,
			ContractID:  con.ID,
			Kind:        kind,
			Description: desc,
			Amount:      amount,
			DueDate:     dueDate,
		}

		event.Status = dueStatus(event.DueDate, now)
		if inv, ok := byItem[itemID]; ok {
			event.InvoiceID = inv.ID
			if inv.IsPaid() {
				event.Status = types.TimelineEventStatusPaid
			}
		}

		events = append(events, event)
	}

	switch plan.Structure {
	case types.PaymentStructureInstallments:
		for i, item := range plan.Installments {
			desc := item.Description
			if desc == "" {
				desc = fmt.Sprintf("Installment %d", i+1)
			}
			add(types.TimelineEventKindInstallment, item.ID, item.Amount, item.DueDate, desc)
		}
	case types.PaymentStructureMilestones:
		for _, item := range plan.Milestones {
			desc := item.Description
			if desc == "" {
				desc = item.Name
			}
			add(types.TimelineEventKindMilestone, item.ID, item.Amount, item.DueDate, desc)
		}
	case types.PaymentStructureCustom:
		for _, item := range plan.CustomPayments {
			add(types.TimelineEventKindCustom, item.ID, item.Amount, item.DueDate, item.Description)
		}
	}

	return events
}

func paymentStatus(p *client.Payment, now time.Time) types.TimelineEventStatus {
	if p.IsPaid() {
		return types.TimelineEventStatusPaid
	}
	return dueStatus(p.DueDate, now)
}

func dueStatus(due time.Time, now time.Time) types.TimelineEventStatus {
	if types.IsPastDue(due, now) {
		return types.TimelineEventStatusOverdue
	}
	return types.TimelineEventStatusPending
}

// sortEvents orders ascending by due date. The sort is stable so events
// sharing a due date keep their synthesis order: legacy payments first,
// then plan items in plan order.
func sortEvents(events []*dto.PaymentTimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].DueDate.Before(events[j].DueDate)
	})
}
