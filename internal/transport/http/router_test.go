package httptransport_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	assessmenthandler "fairmeter/internal/assessment/handler"
	"fairmeter/internal/assessment/service"
	"fairmeter/internal/assessment/store"
	"fairmeter/internal/harvest"
	"fairmeter/internal/indicator"
	"fairmeter/internal/platform/token"
	httptransport "fairmeter/internal/transport/http"
	"fairmeter/pkg/platform/audit"
	auditmem "fairmeter/pkg/platform/audit/store/memory"
	"fairmeter/pkg/testutil"
)

const adminKey = "operator-secret"

type deadChecker struct{}

func (deadChecker) Alive(context.Context, string) bool { return false }

type RouterSuite struct {
	suite.Suite
	source  *harvest.FakeSource
	tokens  *token.Service
	healthy bool
	router  http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.source = harvest.NewFakeSource()
	s.tokens = token.NewService("test-signing-key", "fairmeter", "fairmeter-api")
	s.healthy = true

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := indicator.New(indicator.Services{Liveness: deadChecker{}}, indicator.WithLogger(logger))
	auditStore := auditmem.New()
	svc := service.New(
		func(string) (harvest.Source, error) { return s.source, nil },
		engine,
		store.NewMemory(),
		service.WithLogger(logger),
		service.WithAuditPublisher(audit.NewPublisher(auditStore)),
		service.WithDefaultEndpoint("http://repo.example.org/oai"),
	)

	keyHash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.MinCost)
	s.Require().NoError(err)

	s.router = httptransport.NewRouter(httptransport.Deps{
		Logger:       logger,
		Assessments:  assessmenthandler.New(svc, logger),
		Validator:    s.tokens,
		AdminKeyHash: string(keyHash),
		AuditTrail:   auditStore,
		Health: func(context.Context) error {
			if !s.healthy {
				return errors.New("store down")
			}
			return nil
		},
	})
}

func (s *RouterSuite) createAssessment() *assessmenthandler.AssessmentResponse {
	s.Require().NoError(s.source.AddRecordXML(
		"oai:repo.example.org:10.1234/zenodo.5678",
		`<metadata><oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"
			xmlns:dc="http://purl.org/dc/elements/1.1/">
			<dc:identifier>10.1234/zenodo.5678</dc:identifier>
		</oai_dc:dc></metadata>`,
	))
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/assessments", map[string]string{
		"identifier": "10.1234/zenodo.5678",
	})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return testutil.UnmarshalResponse[assessmenthandler.AssessmentResponse](s.T(), rr)
}

func (s *RouterSuite) TestHealthzReportsReadiness() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	s.healthy = false
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
}

func (s *RouterSuite) TestMetricsEndpointExposed() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}

func (s *RouterSuite) TestDeleteRequiresBearerToken() {
	created := s.createAssessment()

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/assessments/"+created.ID)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)

	req = testutil.NewRequest(s.T(), http.MethodDelete, "/assessments/"+created.ID)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

func (s *RouterSuite) TestDeleteSucceedsWithValidToken() {
	created := s.createAssessment()

	accessToken, err := s.tokens.Issue("operator", "admin", time.Minute)
	s.Require().NoError(err)

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/assessments/"+created.ID)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/assessments/"+created.ID))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
}

func (s *RouterSuite) TestExpiredTokenRejected() {
	created := s.createAssessment()

	accessToken, err := s.tokens.Issue("operator", "admin", -time.Minute)
	s.Require().NoError(err)

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/assessments/"+created.ID)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

func (s *RouterSuite) TestAuditTrailRequiresAdminKey() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/admin/audit"))
	testutil.AssertStatus(s.T(), rr, http.StatusForbidden)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/admin/audit")
	req.Header.Set("X-Admin-Key", "wrong-key")
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
}

func (s *RouterSuite) TestAuditTrailListsRecentEvents() {
	s.createAssessment()

	req := testutil.NewRequest(s.T(), http.MethodGet, "/admin/audit")
	req.Header.Set("X-Admin-Key", adminKey)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	resp := testutil.UnmarshalResponse[struct {
		Events []audit.Event `json:"events"`
	}](s.T(), rr)
	s.Require().NotEmpty(resp.Events)
	s.Equal(audit.ActionAssessmentCreated, resp.Events[0].Action)
}

func (s *RouterSuite) TestRequestIDEchoedOnResponses() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/healthz")
	req.Header.Set("X-Request-Id", "req-123")
	rr := testutil.DoRequest(s.router, req)
	s.Equal("req-123", rr.Header().Get("X-Request-Id"))
}
