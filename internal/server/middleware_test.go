package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/status", nil)
	rec := httptest.NewRecorder()
	RequestIDMiddleware(handler).ServeHTTP(rec, req)

	if seen == "" {
		t.Error("request id missing from context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("X-Request-ID header = %q, context = %q", got, seen)
	}
}

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionID(r.Context())
	})

	req := httptest.NewRequest("GET", "/api/journey", nil)
	rec := httptest.NewRecorder()
	SessionMiddleware(handler).ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("session id missing from context")
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == sessionCookie && c.Value == seen {
			found = true
		}
	}
	if !found {
		t.Errorf("session cookie not set, cookies = %v", cookies)
	}
}

func TestSessionMiddleware_ReusesCookie(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionID(r.Context())
	})

	req := httptest.NewRequest("GET", "/api/journey", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "existing-session"})
	rec := httptest.NewRecorder()
	SessionMiddleware(handler).ServeHTTP(rec, req)

	if seen != "existing-session" {
		t.Errorf("session id = %q, want existing-session", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("middleware should not reissue an existing session cookie")
	}
}

func TestLoggingMiddleware_CustomFields(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddLogField(r.Context(), "item", "camera")
		AddError(r.Context(), nil)
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest("POST", "/api/analyze", nil)
	rec := httptest.NewRecorder()
	LoggingMiddleware(logger)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	TimeoutMiddleware(time.Second)(handler).ServeHTTP(rec, req)

	if deadline.IsZero() {
		t.Fatal("handler context has no deadline")
	}
	if remaining := time.Until(deadline); remaining > time.Second {
		t.Errorf("deadline too far in the future: %v", remaining)
	}
}

func TestGetSessionID_Empty(t *testing.T) {
	if got := GetSessionID(context.Background()); got != "" {
		t.Errorf("GetSessionID(empty ctx) = %q, want empty", got)
	}
}
