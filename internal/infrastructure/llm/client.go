package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"NetShield/internal/config"
	"NetShield/internal/ports"
)

// Client talks to an OpenAI-compatible chat-completions API and carries
// the three verification capabilities: claim extraction, summarization,
// and the final judgment.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	judgeModel string
	httpClient *http.Client
}

var _ ports.ClaimExtractor = (*Client)(nil)
var _ ports.Summarizer = (*Client)(nil)
var _ ports.Judge = (*Client)(nil)

// NewClient builds a client from configuration. The judge may target a
// different (usually larger) model than extraction and summarization.
func NewClient(cfg config.LLMConfig) *Client {
	judgeModel := cfg.JudgeModel
	if judgeModel == "" {
		judgeModel = cfg.Model
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		judgeModel: judgeModel,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}
}

const extractPrompt = `You are a forensic analyst. Your task is to analyze the sparse YouTube video metadata (Title and Description) provided below and extract the single, most critical factual claim and the evidence supporting it.

CRITICAL RULE:
1. Output MUST start with 'Claim:'.
2. Immediately after the extracted claim, you MUST insert a literal newline character.
3. The next line MUST start with 'Evidence:'.
4. Output MUST state the claim and the evidence presented (if any) based ONLY on the video title/description.
5. Do NOT include channel details or subscriber counts.
6. Do NOT summarize or generalize. Extract the single, most specific factual statement made.

VIDEO METADATA:
`

const summaryPrompt = `You are an advanced text summarization model. Your task is to provide a concise, factual summary of the input text provided below.
CRITICAL RULE: The summary must strictly be based ONLY on the input text. If the input text is non-sensical, contains junk, or is too short, simply provide the shortest possible summary or return the original text if it's the most relevant content. DO NOT flag short input as irrelevant.

SUMMARY REQUIRED:
`

// ExtractClaim issues one completion request for the two-line
// Claim:/Evidence: extraction. No retry is built in; retries are the
// orchestrator's call.
func (c *Client) ExtractClaim(ctx context.Context, metadata string) (string, error) {
	return c.complete(ctx, c.model, extractPrompt+metadata, 0.2, 0.7)
}

// Summarize condenses the input into a short factual summary.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, c.model, summaryPrompt+text, 0.2, 0.7)
}

// Judge compares the extracted claim against the news summary under the
// policy rules and returns raw "STATUS (Reason)" text. The word-count
// thresholds are restated in the prompt, but the caller enforces them in
// code before this request is ever made.
func (c *Client) Judge(ctx context.Context, claim, newsSummary string) (string, error) {
	prompt := fmt.Sprintf(
		"You are an AI tasked with analyzing and evaluating content alignment and relevance. Below are an **EXTRACTED FACTUAL CLAIM** from the video metadata and a **CONTEXTUAL NEWS ARTICLE SUMMARY**. Your tasks are:\n"+
			"1. Compare the EXTRACTED CLAIM against the CONTEXTUAL NEWS ARTICLE SUMMARY.\n"+
			"2. Identify if the video's claim is directly supported, contradicted, or generally consistent with the news summary.\n"+
			"3. **CRITICAL DATA CHECK:** If the Video Claim has less than 5 words OR the News Summary has less than 15 words, assign **YELLOW (Insufficient Data)**.\n"+
			"4. **CRITICAL POLICY OVERRIDE:** The following rules dictate a final status. Your response MUST include the reason for the Red or Yellow status, and must follow the format: 'STATUS (Reason)'.\n"+
			"   - **Rule A (Contradiction/Inaccuracy):** If the claim contains **explicit, clear, and major** inaccuracies or contradictions to the news summary, assign **RED (Major Contradiction)**.\n"+
			"   - **Rule B (Content Abuse):** If the claim is highly factual/technical **AND contains significant religious or devotional content**, assign **RED (Content Abuse/Misleading Tags)**.\n"+
			"   - **Rule C (Sensitive/Unverifiable Risk):** If the claim is about a **highly sensitive topic** (e.g., specific political event, specific health claim, specific AQI number) **AND** the validation would otherwise result in YELLOW (i.e., the claim is uncontradicted but only generally related or unverifiable), **upgrade the status to RED (High Unverified Risk)**.\n"+
			"   - **Rule D (Insufficient/Irrelevant Data):** Assign **YELLOW** if the inputs fail the data check in step 3 OR if the news summary is **completely irrelevant** to the core topic of the claim (e.g., searching for politics and finding a recipe).\n"+
			"5. Provide your evaluation as one of the following:\n"+
			"   - **Green (DEFAULT STATUS):** Assign **Green** if the claim **is not actively contradicted**, AND **is not assigned Yellow or Red by a Critical Rule**. If the content is generally related and not proven false, it must be Green. Response must be **Green (Thematic Match and Not Contradicted)**.\n"+
			"   - **Yellow**: Assign **Yellow** ONLY if the claim violates Rule D and does not violate any RED rules. Response must be **Yellow (Reason from Rule D)**.\n"+
			"   - **Red**: The claim violates Rule A, B, or C. Use the specific Red reason from the rule.\n"+
			"Only respond with the specified Status and Reason in the exact format 'STATUS (Reason)', without any additional explanation.\n\n"+
			"Here are the inputs:\n\n"+
			"YouTube Video Claim (with Source Context):\n%q\n\n"+
			"News Article Summary:\n%q",
		claim, newsSummary)

	return c.complete(ctx, c.judgeModel, prompt, 0.5, 1.0)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, model, prompt string, temperature, topP float64) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", fmt.Errorf("llm client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || model == "" {
		return "", fmt.Errorf("llm client misconfigured")
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("llm error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return stripFences(parsed.Choices[0].Message.Content), nil
}

// stripFences removes markdown code fences some models wrap output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Complete exposes a raw prompt completion for adapters that build their
// own instructions (query translation).
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, c.model, prompt, 0.2, 0.7)
}
