package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name        string
		cfg         config.CORSConfig
		origin      string
		method      string
		wantOrigin  string
		wantStatus  int
		wantCredHdr bool
	}{
		{name: "wildcard", cfg: config.CORSConfig{}, origin: "https://vote.unilorin.edu.ng", method: http.MethodGet, wantOrigin: "*", wantStatus: http.StatusOK},
		{name: "wildcard echoes with credentials", cfg: config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, origin: "https://vote.unilorin.edu.ng", method: http.MethodGet, wantOrigin: "https://vote.unilorin.edu.ng", wantStatus: http.StatusOK, wantCredHdr: true},
		{name: "allow list match", cfg: config.CORSConfig{AllowedOrigins: []string{"https://sug.unilorin.edu.ng"}}, origin: "https://SUG.unilorin.edu.ng", method: http.MethodGet, wantOrigin: "https://SUG.unilorin.edu.ng", wantStatus: http.StatusOK},
		{name: "allow list miss", cfg: config.CORSConfig{AllowedOrigins: []string{"https://sug.unilorin.edu.ng"}}, origin: "https://evil.example", method: http.MethodGet, wantOrigin: "", wantStatus: http.StatusOK},
		{name: "preflight", cfg: config.CORSConfig{}, origin: "https://vote.unilorin.edu.ng", method: http.MethodOptions, wantOrigin: "*", wantStatus: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tc.cfg))
			r.Handle(tc.method, "/api/v1/elections", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, "/api/v1/elections", nil)
			req.Header.Set("Origin", tc.origin)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status want %d got %d", tc.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Fatalf("allow origin want %q got %q", tc.wantOrigin, got)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials") == "true"; got != tc.wantCredHdr {
				t.Fatalf("credentials header want %v got %v", tc.wantCredHdr, got)
			}
		})
	}
}

func TestRequestIDMiddlewarePropagatesOrGenerates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, response.RequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, " ballot-7 ")
	r.ServeHTTP(w, req)
	if w.Body.String() != "ballot-7" || w.Header().Get(requestIDHeader) != "ballot-7" {
		t.Fatalf("expected trimmed incoming id, body=%q header=%q", w.Body.String(), w.Header().Get(requestIDHeader))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(requestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("generated request id should be a uuid, got %q", generated)
	}
	if w.Body.String() != generated {
		t.Fatalf("context id %q differs from header %q", w.Body.String(), generated)
	}
}

func TestJWTAuthMiddlewareWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestReadBearerTokenRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		ok     bool
	}{
		{name: "missing", header: "", ok: false},
		{name: "wrong scheme", header: "Basic abc", ok: false},
		{name: "empty token", header: "Bearer ", ok: false},
		{name: "valid", header: "Bearer abc.def", ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			token, ok := readBearerToken(c)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if ok && token != "abc.def" {
				t.Fatalf("token want abc.def got %s", token)
			}
			if !ok && !c.IsAborted() {
				t.Fatalf("malformed header should abort the request")
			}
		})
	}
}
