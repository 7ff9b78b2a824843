package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
	handlers "github.com/oksasatya/go-ddd-auth-core/internal/interface/http"
	"github.com/oksasatya/go-ddd-auth-core/pkg/helpers"
	"github.com/oksasatya/go-ddd-auth-core/pkg/response"
)

type fakeResolver struct {
	tokens map[string]vo.EntityID
	err    error
	seen   []string
}

func (f *fakeResolver) Resolve(_ context.Context, token string) (vo.EntityID, error) {
	f.seen = append(f.seen, token)
	if f.err != nil {
		return vo.EntityID{}, f.err
	}
	id, ok := f.tokens[token]
	if !ok {
		return vo.EntityID{}, apperror.InvalidToken("unknown")
	}
	return id, nil
}

func guarded(t *testing.T, r IdentityResolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	e := gin.New()
	e.GET("/me", Auth(r, logger), func(c *gin.Context) {
		id, ok := handlers.IdentityFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "key": c.GetString(handlers.CtxUserIDKey)})
	})
	return e
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, response.StatusError, body.Status)
	return *body.Error
}

func TestAuthAcceptsBearerHeader(t *testing.T) {
	id := vo.NewEntityID()
	r := &fakeResolver{tokens: map[string]vo.EntityID{"good": id}}
	e := guarded(t, r)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer good")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+id.String()+`","key":"`+id.String()+`"}`, w.Body.String())
}

func TestAuthFallsBackToCookie(t *testing.T) {
	id := vo.NewEntityID()
	r := &fakeResolver{tokens: map[string]vo.EntityID{"cookie-token": id}}
	e := guarded(t, r)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: "cookie-token"})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"cookie-token"}, r.seen)
}

func TestAuthRejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
		code   string
	}{
		{"missing", "", nil, apperror.CodeInvalidToken},
		{"wrong scheme", "Basic abc", nil, apperror.CodeInvalidToken},
		{"unknown token", "Bearer nope", nil, apperror.CodeInvalidToken},
		{"expired", "Bearer old", apperror.ErrTokenExpired, apperror.CodeTokenExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := guarded(t, &fakeResolver{err: tc.err})
			before := handlers.MetricValue(handlers.MetricTokenRejections)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			assert.Equal(t, tc.code, decodeError(t, w).Code)
			assert.Equal(t, before+1, handlers.MetricValue(handlers.MetricTokenRejections))
		})
	}
}
