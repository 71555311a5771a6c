package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// MongoURIEnv names the environment variable that enables database tests
const MongoURIEnv = "VREM_TEST_MONGO_URI"

// IntegrationTestSuite provides base functionality for tests that need a
// running MongoDB. The suite is skipped unless MongoURIEnv is set.
type IntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	cancel    context.CancelFunc
	uri       string
	startTime time.Time
}

// SetupSuite runs before all tests in the suite
func (s *IntegrationTestSuite) SetupSuite() {
	s.uri = os.Getenv(MongoURIEnv)
	if s.uri == "" {
		s.T().Skipf("%s not set", MongoURIEnv)
	}
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 2*time.Minute)
	s.startTime = time.Now()
}

// TearDownSuite runs after all tests in the suite
func (s *IntegrationTestSuite) TearDownSuite() {
	if s.cancel != nil {
		s.cancel()
	}
	s.T().Logf("Integration test suite completed in %v", time.Since(s.startTime))
}

// Context returns the suite context
func (s *IntegrationTestSuite) Context() context.Context {
	return s.ctx
}

// MongoURI returns the connection string of the test database
func (s *IntegrationTestSuite) MongoURI() string {
	return s.uri
}

// IntegrationTest skips t in short mode
func IntegrationTest(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}
