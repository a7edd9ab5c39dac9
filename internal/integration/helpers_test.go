package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillswap/internal/app"
	"skillswap/internal/config"

	"github.com/gofiber/fiber/v3"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type profileData struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Matches   []string `json:"matches"`
}

type matchItem struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

func memoryConfig() config.Config {
	return config.Config{
		App:       config.AppConfig{AppName: "skillswap-test", Environment: "test", HTTPPort: "0"},
		Database:  config.DatabaseConfig{Driver: config.DriverMemory},
		Session:   config.SessionConfig{Secret: "test-secret", TTL: time.Hour},
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000},
	}
}

func newTestApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c, err := app.NewContainer(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := c.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	go c.Hub.Run(ctx)

	return app.New(c).Fiber
}

// call sends a JSON request, optionally with the session cookie, and
// decodes the response envelope.
func call(t *testing.T, a *fiber.App, method, path string, body any, token string) (*http.Response, semanticResponse) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	resp, err := a.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env semanticResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v (body=%s)", method, path, err, raw)
		}
	}
	return resp, env
}

func sessionCookie(resp *http.Response) (*http.Cookie, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c, true
		}
	}
	return nil, false
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode data: %v (data=%s)", err, raw)
	}
	return out
}
