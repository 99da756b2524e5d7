package lenstests

import (
	"net/http/httptest"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/lens/catalog"
)

// LensBaseTestSuite serves the fixture site for the duration of a suite so
// scenario tests have a live target without a real deployment.
type LensBaseTestSuite struct {
	suite.Suite

	Registry *catalog.Registry
	Server   *httptest.Server
}

// SetupSuite initialises the catalog registry and starts the fixture site.
func (s *LensBaseTestSuite) SetupSuite() {
	reg, err := catalog.NewRegistry()
	s.Require().NoError(err, "could not load embedded catalogs")
	s.Registry = reg

	s.Server = httptest.NewServer(FixtureHandler(reg))
}

// TearDownSuite stops the fixture site after all tests are completed.
func (s *LensBaseTestSuite) TearDownSuite() {
	if s.Server != nil {
		s.Server.Close()
	}
}
