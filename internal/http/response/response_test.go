package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "rid-1")

	Abort(c, CodeConflict, "already voted")

	if w.Code != http.StatusOK || !c.IsAborted() {
		t.Fatalf("expected aborted 200 response, got %d aborted=%v", w.Code, c.IsAborted())
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeConflict || body.Data[RequestIDKey] != "rid-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("db down")
	appErr := WrapError(CodeInternal, "error.vote_failed", "vote failed", cause)
	if !errors.Is(appErr, cause) || !appErr.Internal() {
		t.Fatalf("expected wrapped internal error")
	}
	if WrapError(CodeBadRequest, "error.bad_request", "bad", nil).Internal() {
		t.Fatalf("4xx should not be internal")
	}
	if got := appErr.Error(); got != "vote failed: db down" {
		t.Fatalf("unexpected message %q", got)
	}
}
