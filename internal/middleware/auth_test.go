package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirogwa/highland/internal/models"
	"github.com/hirogwa/highland/internal/test"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestAuthLoadsUserIntoContext(t *testing.T) {
	store, mock := test.NewMockStore(t)
	auth := NewAuth(store, testSecret)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM users WHERE username = \$1`).
		WithArgs("tester").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "email", "identity_id", "created_at", "updated_at"}).
			AddRow(int64(1), "tester", "Tester", "tester@example.com", "id-abc", now, now))

	var got *models.User
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = r.Context().Value(UserContextKey).(*models.User)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/shows", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "tester"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "tester", got.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	store, _ := test.NewMockStore(t)
	auth := NewAuth(store, testSecret)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/shows", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongScheme(t *testing.T) {
	store, _ := test.NewMockStore(t)
	auth := NewAuth(store, testSecret)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/shows", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsBadSignature(t *testing.T) {
	store, _ := test.NewMockStore(t)
	auth := NewAuth(store, testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "tester"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/shows", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	store, mock := test.NewMockStore(t)
	auth := NewAuth(store, testSecret)

	mock.ExpectQuery(`SELECT \* FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "email", "identity_id", "created_at", "updated_at"}))

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for unknown users")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/shows", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "ghost"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
