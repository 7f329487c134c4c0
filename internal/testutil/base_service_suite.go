package testutil

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/repository/memory"
	"github.com/billfold/billfold/internal/types"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides common functionality for all service
// test suites: an ephemeral repository registry, a test logger and the
// shared service params.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	registry *memory.Registry
	logger   *logger.Logger
	config   *config.Configuration
	now      time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.WithValue(context.Background(), types.CtxRequestID, types.GenerateUUID())
	s.registry = memory.NewEphemeralRegistry(s.logger)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

// ClearStores resets all repositories.
func (s *BaseServiceTestSuite) ClearStores() {
	s.registry.Clients.Clear()
	s.registry.Contracts.Clear()
	s.registry.Invoices.Clear()
	s.registry.Templates.Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetRegistry returns the test repository registry
func (s *BaseServiceTestSuite) GetRegistry() *memory.Registry {
	return s.registry
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
