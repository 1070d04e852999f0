package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/commently/commently/internal/common"
	"github.com/commently/commently/internal/server/auth"
	"github.com/commently/commently/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m["message"]
}

func TestSignUpEndpoint_Success(t *testing.T) {
	ur := &fakeUsersRepo{
		getErr:    common.ErrorNotFound,
		createOut: &models.User{ID: "123", Email: "u@test.com"},
	}
	s, _ := newTestServer(t, ur, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/signup", `{"email":"u@test.com","password":"abc"}`, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		UserToken string `json:"userToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.UserToken)

	claims, err := auth.ParseToken(resp.UserToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "u@test.com", claims.Email)
	assert.Equal(t, "123", claims.UserID)

	// the token and the response never carry the password
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignUpEndpoint_ValidationMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"email":"","password":""}`, "provide both fields"},
		{"malformed email", `{"email":"not-an-email","password":"abc"}`, "invalid email"},
		{"short password", `{"email":"u@test.com","password":"ab"}`, "password too short"},
		{"unparseable body", `{]`, "provide both fields"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, &fakeUsersRepo{}, &fakeCommentsRepo{})

			rec := doJSON(t, s, http.MethodPost, "/users/signup", tc.body, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.want, messageOf(t, rec))
		})
	}
}

func TestSignUpEndpoint_Duplicate(t *testing.T) {
	ur := &fakeUsersRepo{getOut: &models.User{ID: "42", Email: "u@test.com"}}
	s, _ := newTestServer(t, ur, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/signup", `{"email":"u@test.com","password":"abc"}`, "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "user already exists", messageOf(t, rec))
}

func TestSignUpEndpoint_StoreFailure(t *testing.T) {
	ur := &fakeUsersRepo{getErr: common.ErrorNotFound, createErr: errors.New("connection reset")}
	s, _ := newTestServer(t, ur, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/signup", `{"email":"u@test.com","password":"abc"}`, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error encountered", messageOf(t, rec))
}

func TestLoginEndpoint_Success(t *testing.T) {
	ur := &fakeUsersRepo{getOut: &models.User{ID: "7", Email: "u@test.com", PasswordHash: hashOf(t, "abc")}}
	s, _ := newTestServer(t, ur, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/login", `{"email":"u@test.com","password":"abc"}`, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		UserToken string `json:"userToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := auth.ParseToken(resp.UserToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	s, _ := newTestServer(t, &fakeUsersRepo{}, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/login", `{"email":"u@test.com"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "provide both fields", messageOf(t, rec))
}

func TestLoginEndpoint_UserNotFound(t *testing.T) {
	ur := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s, _ := newTestServer(t, ur, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/login", `{"email":"ghost@x.com","password":"anything"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "user not found", messageOf(t, rec))
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	ur := &fakeUsersRepo{getOut: &models.User{ID: "7", Email: "u@test.com", PasswordHash: hashOf(t, "right")}}
	s, _ := newTestServer(t, ur, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/login", `{"email":"u@test.com","password":"wrong"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "incorrect username or password", messageOf(t, rec))
}

func TestLoginEndpoint_StoreFailureReusesCredentialsMessage(t *testing.T) {
	ur := &fakeUsersRepo{getErr: errors.New("timeout")}
	s, _ := newTestServer(t, ur, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodPost, "/users/login", `{"email":"u@test.com","password":"abc"}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "incorrect username or password", messageOf(t, rec))
}

func TestVerifyEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &fakeUsersRepo{}, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodGet, "/users/verify", "", tokenFor(t, "a@b.co", "123"))

	require.Equal(t, http.StatusCreated, rec.Code)

	var identity struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, "123", identity.ID)
	assert.Equal(t, "a@b.co", identity.Email)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestVerifyEndpoint_NoToken(t *testing.T) {
	s, _ := newTestServer(t, &fakeUsersRepo{}, &fakeCommentsRepo{})

	rec := doJSON(t, s, http.MethodGet, "/users/verify", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
