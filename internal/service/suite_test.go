package service

import (
	"github.com/billfold/billfold/internal/testutil"
)

// testParams builds service params from the suite's ephemeral registry.
// No HTTP client is wired; services needing one inject fakes.
func testParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	return NewServiceParams(s.GetLogger(), s.GetConfig(), s.GetRegistry(), nil)
}
