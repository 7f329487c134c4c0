package dto

import (
	"github.com/billfold/billfold/internal/domain/template"
	"github.com/billfold/billfold/internal/types"
	"github.com/billfold/billfold/internal/validator"
)

type CreateTemplateRequest struct {
	Name           string `json:"name" validate:"required"`
	CompanyName    string `json:"company_name" validate:"required"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyEmail   string `json:"company_email,omitempty" validate:"omitempty,email"`
	CompanyPhone   string `json:"company_phone,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	Terms          string `json:"terms,omitempty"`
	IsDefault      bool   `json:"is_default,omitempty"`
}

func (r *CreateTemplateRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateTemplateRequest) ToTemplate() *template.ContractTemplate {
	return &template.ContractTemplate{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT_TEMPLATE),
		Name:           r.Name,
		CompanyName:    r.CompanyName,
		CompanyAddress: r.CompanyAddress,
		CompanyEmail:   r.CompanyEmail,
		CompanyPhone:   r.CompanyPhone,
		LogoURL:        r.LogoURL,
		Terms:          r.Terms,
		IsDefault:      r.IsDefault,
		BaseModel:      types.GetDefaultBaseModel(),
	}
}

type UpdateTemplateRequest struct {
	Name           *string `json:"name,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	CompanyAddress *string `json:"company_address,omitempty"`
	CompanyEmail   *string `json:"company_email,omitempty" validate:"omitempty,email"`
	CompanyPhone   *string `json:"company_phone,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	Terms          *string `json:"terms,omitempty"`
}

func (r *UpdateTemplateRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type TemplateResponse struct {
	*template.ContractTemplate
}

type ListTemplatesResponse struct {
	Items []*TemplateResponse `json:"items"`
	Total int                 `json:"total"`
}
