package service

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/samber/lo"

	"github.com/billfold/billfold/internal/domain/template"
)

// TemplateService manages contract templates. Exactly one template is
// the active default; contract generation refuses to produce invoices
// without it.
type TemplateService interface {
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error)
	GetDefaultTemplate(ctx context.Context) (*dto.TemplateResponse, error)
	ListTemplates(ctx context.Context) (*dto.ListTemplatesResponse, error)
	UpdateTemplate(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	SetDefaultTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) error
}

type templateService struct {
	ServiceParams
}

func NewTemplateService(params ServiceParams) TemplateService {
	return &templateService{
		ServiceParams: params,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tmpl := req.ToTemplate()
	if err := tmpl.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid template data").
			Mark(ierr.ErrValidation)
	}

	// The first template ever created becomes the default implicitly.
	existing, err := s.TemplateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		tmpl.IsDefault = true
	}

	if err := s.TemplateRepo.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	if tmpl.IsDefault && len(existing) > 0 {
		if err := s.TemplateRepo.SetDefault(ctx, tmpl.ID); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("created contract template",
		"template_id", tmpl.ID,
		"name", tmpl.Name,
		"is_default", tmpl.IsDefault)

	return &dto.TemplateResponse{ContractTemplate: tmpl}, nil
}

func (s *templateService) GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	tmpl, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TemplateResponse{ContractTemplate: tmpl}, nil
}

func (s *templateService) GetDefaultTemplate(ctx context.Context) (*dto.TemplateResponse, error) {
	tmpl, err := s.TemplateRepo.GetDefault(ctx)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("No default contract template is configured").
			Mark(ierr.ErrNotFound)
	}
	return &dto.TemplateResponse{ContractTemplate: tmpl}, nil
}

func (s *templateService) ListTemplates(ctx context.Context) (*dto.ListTemplatesResponse, error) {
	templates, err := s.TemplateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := lo.Map(templates, func(t *template.ContractTemplate, _ int) *dto.TemplateResponse {
		return &dto.TemplateResponse{ContractTemplate: t}
	})
	return &dto.ListTemplatesResponse{Items: items, Total: len(items)}, nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.CompanyName != nil {
		tmpl.CompanyName = *req.CompanyName
	}
	if req.CompanyAddress != nil {
		tmpl.CompanyAddress = *req.CompanyAddress
	}
	if req.CompanyEmail != nil {
		tmpl.CompanyEmail = *req.CompanyEmail
	}
	if req.CompanyPhone != nil {
		tmpl.CompanyPhone = *req.CompanyPhone
	}
	if req.LogoURL != nil {
		tmpl.LogoURL = *req.LogoURL
	}
	if req.Terms != nil {
		tmpl.Terms = *req.Terms
	}
	tmpl.UpdatedAt = time.Now().UTC()

	if err := tmpl.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid template data").
			Mark(ierr.ErrValidation)
	}

	if err := s.TemplateRepo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return &dto.TemplateResponse{ContractTemplate: tmpl}, nil
}

func (s *templateService) SetDefaultTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	if err := s.TemplateRepo.SetDefault(ctx, id); err != nil {
		return nil, err
	}
	tmpl, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TemplateResponse{ContractTemplate: tmpl}, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, id string) error {
	tmpl, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if tmpl.IsDefault {
		return ierr.NewError("cannot delete the default template").
			WithHint("Set another template as default first").
			Mark(ierr.ErrInvalidOperation)
	}
	return s.TemplateRepo.Delete(ctx, id)
}
