package recipeapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
)

func setupClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) (*Client, context.Context) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.LevelOff, nil)
	return NewClient(srv.URL+"/generate-recipe", log, opts...), context.Background()
}

func TestGenerateRequestShape(t *testing.T) {
	var (
		gotMethod  string
		gotPath    string
		gotType    string
		gotReqID   string
		gotPayload map[string][]string
	)
	client, ctx := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get(HeaderRequestID)
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotPayload); err != nil {
			t.Errorf("decoding request body %q: %v", body, err)
		}
		io.WriteString(w, `{"cuisine_name":"Omelette","steps":["Beat eggs","Cook"]}`)
	})

	ingredients := []string{"egg", "milk", "egg"}
	if _, err := client.Generate(ctx, ingredients); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/generate-recipe" {
		t.Fatalf("expected /generate-recipe, got %s", gotPath)
	}
	if gotType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotType)
	}
	if _, err := uuid.Parse(gotReqID); err != nil {
		t.Fatalf("expected a UUID request id, got %q", gotReqID)
	}
	want := map[string][]string{"ingredients": {"egg", "milk", "egg"}}
	if diff := cmp.Diff(want, gotPayload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSuccess(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *domain.Recipe
	}{
		{
			"basic",
			`{"cuisine_name":"Omelette","steps":["Beat eggs","Cook"]}`,
			&domain.Recipe{Name: "Omelette", Steps: []string{"Beat eggs", "Cook"}},
		},
		{
			"extra fields ignored",
			`{"cuisine_name":"Toast","steps":["Toast it"],"calories":120,"tags":["quick"]}`,
			&domain.Recipe{Name: "Toast", Steps: []string{"Toast it"}},
		},
		{
			"no steps",
			`{"cuisine_name":"Water","steps":[]}`,
			&domain.Recipe{Name: "Water", Steps: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, ctx := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			got, err := client.Generate(ctx, []string{"egg"})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("recipe mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateStatusError(t *testing.T) {
	client, ctx := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":"bedrock exploded"}`)
	})

	_, err := client.Generate(ctx, []string{"egg"})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", se.Code)
	}
	if !strings.Contains(se.Body, "bedrock exploded") {
		t.Fatalf("expected body in error, got %q", se.Body)
	}
	if se.RequestID == "" {
		t.Fatal("expected request id in error")
	}
}

func TestGenerateMalformed(t *testing.T) {
	bodies := map[string]string{
		"not json":         `<html>oops</html>`,
		"missing name":     `{"steps":["a"]}`,
		"missing steps":    `{"cuisine_name":"Omelette"}`,
		"backend error":    `{"error":"Failed to parse response","raw_response":"..."}`,
		"steps not string": `{"cuisine_name":"Omelette","steps":[1,2]}`,
		"null":             `null`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client, ctx := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})
			_, err := client.Generate(ctx, []string{"egg"})
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestGenerateNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, logger.New(logger.LevelOff, nil))
	if _, err := client.Generate(context.Background(), []string{"egg"}); err == nil {
		t.Fatal("expected error for a closed server")
	}
}

func TestGenerateTimeout(t *testing.T) {
	client, ctx := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}, WithHTTPTimeout(20*time.Millisecond))

	if _, err := client.Generate(ctx, []string{"egg"}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", logger.New(logger.LevelOff, nil), WithUserAgent("test/1"))
	if c.Endpoint() != DefaultEndpoint {
		t.Fatalf("expected %s, got %s", DefaultEndpoint, c.Endpoint())
	}
	if c.userAgent != "test/1" {
		t.Fatalf("expected user agent override, got %q", c.userAgent)
	}
}
