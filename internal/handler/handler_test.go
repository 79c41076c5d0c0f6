package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lead_scoring/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	auth   *mockAuthService
	users  *mockUserService
	leads  *mockLeadService
	router *gin.Engine
}

func newTestServer(jwtUtil *utils.JWTUtil) *testServer {
	s := &testServer{auth: new(mockAuthService), users: new(mockUserService), leads: new(mockLeadService)}
	s.router = NewRouter(RouterDeps{
		Auth:  s.auth,
		Users: s.users,
		Leads: s.leads,
		DB:    fakePinger{},
		JWT:   jwtUtil,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

type errorBody struct {
	Message string   `json:"message"`
	Details []string `json:"details"`
}
