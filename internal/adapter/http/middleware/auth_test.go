package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "taskboard/pkg/test"

	"taskboard/internal/adapter/database/sqlite/repository"
	"taskboard/internal/adapter/telemetry"
	"taskboard/internal/core/port"
	"taskboard/pkg/test/factory"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type TokenAuthSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	Router   *gin.Engine
}

func (s *TokenAuthSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()
	s.UserRepo = repository.NewUserRepository(db)

	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())

	s.Router = gin.New()
	s.Router.Use(TokenAuth(s.UserRepo, nil, metrics))
	s.Router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":       CurrentUserID(c),
			"username": CurrentUsername(c),
		})
	})
}

func TestTokenAuthSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TokenAuthSuite))
}

func (s *TokenAuthSuite) loggedInUser(token string) {
	user := factory.NewUser(map[string]interface{}{
		"Username": "johndoe",
		"Token":    &token,
	})

	_, err := s.UserRepo.Create(context.Background(), user)
	Expect(err).ToNot(HaveOccurred())
}

func (s *TokenAuthSuite) request(header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *TokenAuthSuite) TestBearerToken() {
	s.loggedInUser("valid-token")

	rr := s.request("Bearer valid-token")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Body.String()).To(ContainSubstring("johndoe"))
}

func (s *TokenAuthSuite) TestRawToken() {
	s.loggedInUser("valid-token")

	rr := s.request("valid-token")

	Expect(rr.Code).To(Equal(http.StatusOK))
}

func (s *TokenAuthSuite) TestMissingHeader() {
	rr := s.request("")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *TokenAuthSuite) TestUnknownToken() {
	s.loggedInUser("valid-token")

	rr := s.request("Bearer other-token")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *TokenAuthSuite) TestEmptyBearer() {
	rr := s.request("Bearer ")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}
