package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"barberbook/models"
	"barberbook/services/account"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccountSvc struct {
	accounts map[string]*models.Account
	password string
	signOuts []string
}

func (s *stubAccountSvc) Authenticate(username, password string) (string, *models.Account, error) {
	acct := s.accounts[username]
	if acct == nil || password != s.password {
		return "", nil, account.AuthError{Reason: "Incorrect username or password"}
	}
	return "tok-" + username, acct, nil
}

func (s *stubAccountSvc) GetByUsername(username string) (*models.Account, error) {
	return s.accounts[username], nil
}

func (s *stubAccountSvc) SignOut(username string) error {
	s.signOuts = append(s.signOuts, username)
	return nil
}

func newAuthRouter(svc *stubAccountSvc) *gin.Engine {
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/api/login", h.Login)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	svc := &stubAccountSvc{
		accounts: map[string]*models.Account{
			"owner": {Username: "owner", Role: models.RoleOwner},
		},
		password: "password",
	}
	r := newAuthRouter(svc)

	w := postForm(r, "/api/login", url.Values{"username": {"owner"}, "password": {"password"}})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "tok-owner", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, models.RoleOwner, body["role"])
}

func TestLoginMissingFields(t *testing.T) {
	r := newAuthRouter(&stubAccountSvc{})

	w := postForm(r, "/api/login", url.Values{"username": {"owner"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := &stubAccountSvc{
		accounts: map[string]*models.Account{
			"owner": {Username: "owner", Role: models.RoleOwner},
		},
		password: "password",
	}
	r := newAuthRouter(svc)

	w := postForm(r, "/api/login", url.Values{"username": {"owner"}, "password": {"wrong"}})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Incorrect username or password", body["message"])
}
