package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"NetShield/internal/config"
)

func completionServer(t *testing.T, content string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:   endpoint,
		Model:      "small-model",
		JudgeModel: "big-model",
		APIKey:     "test-key",
	}
}

func TestExtractClaim(t *testing.T) {
	t.Parallel()

	var req chatRequest
	server := completionServer(t, "Claim: x happened.\nEvidence: the description.", &req)
	defer server.Close()

	c := NewClient(testConfig(server.URL))

	out, err := c.ExtractClaim(context.Background(), "Video Title: x happened\nVideo Description: proof inside")
	if err != nil {
		t.Fatalf("ExtractClaim error: %v", err)
	}
	if !strings.HasPrefix(out, "Claim:") {
		t.Fatalf("unexpected output: %q", out)
	}
	if req.Model != "small-model" {
		t.Fatalf("extraction must use the base model, got %q", req.Model)
	}
	if req.Temperature != 0.2 || req.TopP != 0.7 {
		t.Fatalf("unexpected sampling params: %+v", req)
	}
	if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "forensic analyst") {
		t.Fatalf("extraction prompt missing: %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[0].Content, "proof inside") {
		t.Fatalf("metadata not forwarded: %+v", req.Messages)
	}
}

func TestJudgeUsesJudgeModel(t *testing.T) {
	t.Parallel()

	var req chatRequest
	server := completionServer(t, "Green (Thematic Match and Not Contradicted)", &req)
	defer server.Close()

	c := NewClient(testConfig(server.URL))

	out, err := c.Judge(context.Background(), "some claim text here", "some news summary text")
	if err != nil {
		t.Fatalf("Judge error: %v", err)
	}
	if out != "Green (Thematic Match and Not Contradicted)" {
		t.Fatalf("unexpected judgment: %q", out)
	}
	if req.Model != "big-model" {
		t.Fatalf("judgment must use the judge model, got %q", req.Model)
	}
	if req.Temperature != 0.5 || req.TopP != 1.0 {
		t.Fatalf("unexpected sampling params: %+v", req)
	}
	if !strings.Contains(req.Messages[0].Content, "STATUS (Reason)") {
		t.Fatalf("judge prompt must pin the output format")
	}
}

func TestSummarizeStripsFences(t *testing.T) {
	t.Parallel()

	server := completionServer(t, "```\na tidy summary\n```", nil)
	defer server.Close()

	c := NewClient(testConfig(server.URL))

	out, err := c.Summarize(context.Background(), "raw news text")
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if out != "a tidy summary" {
		t.Fatalf("fences not stripped: %q", out)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))

	if _, err := c.Summarize(context.Background(), "text"); err == nil {
		t.Fatalf("expected error for upstream 429")
	}
}

func TestMisconfiguredClient(t *testing.T) {
	t.Parallel()

	c := NewClient(config.LLMConfig{Endpoint: "http://localhost:0"})

	if _, err := c.ExtractClaim(context.Background(), "metadata"); err == nil {
		t.Fatalf("expected error without an api key")
	}
}

func TestJudgeModelFallsBackToBaseModel(t *testing.T) {
	t.Parallel()

	var req chatRequest
	server := completionServer(t, "Green (ok)", &req)
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.JudgeModel = ""
	c := NewClient(cfg)

	if _, err := c.Judge(context.Background(), "claim", "summary"); err != nil {
		t.Fatalf("Judge error: %v", err)
	}
	if req.Model != "small-model" {
		t.Fatalf("expected base-model fallback, got %q", req.Model)
	}
}
