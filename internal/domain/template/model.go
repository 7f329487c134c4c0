package template

import (
	"errors"
	"fmt"

	"github.com/billfold/billfold/internal/types"
)

// ErrTemplateNotFound is returned when a contract template is not found
var ErrTemplateNotFound = errors.New("contract template not found")

// ContractTemplate holds reusable company letterhead data. Exactly one
// template is the active default used by contract generation; legacy
// named templates co-exist alongside it.
type ContractTemplate struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyEmail   string `json:"company_email,omitempty"`
	CompanyPhone   string `json:"company_phone,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	Terms          string `json:"terms,omitempty"`
	IsDefault      bool   `json:"is_default"`
	types.BaseModel
}

func (t *ContractTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name must not be empty")
	}
	if t.CompanyName == "" {
		return fmt.Errorf("template company name must not be empty")
	}
	return nil
}
