package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(t *testing.T, h gin.HandlerFunc, origin string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(h)
	r.OPTIONS("/genealogy/addPerson", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/genealogy/addPerson", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSWildcardAllowsAnyOrigin(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	for _, origins := range [][]string{nil, {"*"}, {"http://a.test", "*"}} {
		rec := preflight(t, CORS(origins), "http://family.example")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("origins=%v unexpected status: got=%d want=%d", origins, rec.Code, http.StatusNoContent)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("origins=%v unexpected allow-origin header: got=%q want=%q", origins, got, "*")
		}
	}
}

func TestCORSAllowList(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	origins := []string{"http://localhost:5173", " http://127.0.0.1:5173 "}

	for _, origin := range []string{"http://localhost:5173", "http://127.0.0.1:5173"} {
		origin := origin
		t.Run(origin, func(t *testing.T) {
			t.Parallel()
			rec := preflight(t, CORS(origins), origin)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, origin)
			}
		})
	}

	rec := preflight(t, CORS(origins), "http://evil.test")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin: got=%d want=%d", rec.Code, http.StatusForbidden)
	}
}
