package service

import (
	"testing"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type TemplateServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TemplateService
}

func TestTemplateService(t *testing.T) {
	suite.Run(t, new(TemplateServiceSuite))
}

func (s *TemplateServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTemplateService(testParams(&s.BaseServiceTestSuite))
}

func (s *TemplateServiceSuite) create(name string) *dto.TemplateResponse {
	resp, err := s.service.CreateTemplate(s.GetContext(), dto.CreateTemplateRequest{
		Name:        name,
		CompanyName: "Billfold Studio",
	})
	s.Require().NoError(err)
	return resp
}

func (s *TemplateServiceSuite) TestFirstTemplateBecomesDefault() {
	first := s.create("Standard")
	s.True(first.IsDefault)

	second := s.create("Minimal")
	s.False(second.IsDefault)

	def, err := s.service.GetDefaultTemplate(s.GetContext())
	s.Require().NoError(err)
	s.Equal(first.ID, def.ID)
}

func (s *TemplateServiceSuite) TestSetDefaultClearsPrevious() {
	first := s.create("Standard")
	second := s.create("Minimal")

	_, err := s.service.SetDefaultTemplate(s.GetContext(), second.ID)
	s.Require().NoError(err)

	def, err := s.service.GetDefaultTemplate(s.GetContext())
	s.Require().NoError(err)
	s.Equal(second.ID, def.ID)

	old, err := s.service.GetTemplate(s.GetContext(), first.ID)
	s.Require().NoError(err)
	s.False(old.IsDefault)
}

func (s *TemplateServiceSuite) TestNoDefaultTemplate() {
	_, err := s.service.GetDefaultTemplate(s.GetContext())
	s.Error(err)
}

func (s *TemplateServiceSuite) TestUpdateTemplate() {
	created := s.create("Standard")

	email := "hello@billfold.dev"
	resp, err := s.service.UpdateTemplate(s.GetContext(), created.ID, dto.UpdateTemplateRequest{
		CompanyEmail: &email,
	})
	s.Require().NoError(err)
	s.Equal(email, resp.CompanyEmail)
	s.Equal("Standard", resp.Name)
}

func (s *TemplateServiceSuite) TestCannotDeleteDefault() {
	first := s.create("Standard")
	second := s.create("Minimal")

	s.Error(s.service.DeleteTemplate(s.GetContext(), first.ID))

	_, err := s.service.SetDefaultTemplate(s.GetContext(), second.ID)
	s.Require().NoError(err)
	s.NoError(s.service.DeleteTemplate(s.GetContext(), first.ID))
}
