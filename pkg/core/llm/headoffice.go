package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HeadOfficeProvider talks to the HeadOffice question endpoint, a plain HTTP
// JSON transport. Its gateway enforces a hard request-size ceiling and
// answers oversized payloads with 413 (or a 400 carrying a size message),
// which is surfaced as PayloadTooLargeError.
type HeadOfficeProvider struct {
	BaseURL string // e.g. "https://api.headoffice.ai/v1"
	APIKey  string
	Client  *http.Client
}

var _ Provider = (*HeadOfficeProvider)(nil)

// NewHeadOfficeProvider builds a provider with a blocking-call timeout in the
// tens of seconds, matching the synchronous round-trip model of the pipeline.
func NewHeadOfficeProvider(baseURL, apiKey string) *HeadOfficeProvider {
	return &HeadOfficeProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type headOfficeRequest struct {
	Context  string `json:"context"`
	Question string `json:"question"`
}

type headOfficeResponse struct {
	Answer string `json:"answer"`
}

func (p *HeadOfficeProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("HEADOFFICE_API_KEY_MISSING: provider configured without an API key")
	}

	baseURL := p.BaseURL
	if baseURL == "" {
		baseURL = "https://api.headoffice.ai/v1"
	}

	// The question endpoint takes the instruction as "question" and the
	// document payload as "context".
	reqBody := headOfficeRequest{
		Context:  prompt,
		Question: systemPrompt,
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("HEADOFFICE_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/openai/question", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("HEADOFFICE_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HEADOFFICE_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("HEADOFFICE_READ_BODY_ERROR: %v", err)
	}

	if res.StatusCode == http.StatusRequestEntityTooLarge ||
		(res.StatusCode == http.StatusBadRequest && looksLikeSizeRejection(string(body))) {
		return "", &PayloadTooLargeError{Cause: fmt.Errorf("HEADOFFICE_API_ERROR: status=%d body=%s", res.StatusCode, string(body))}
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HEADOFFICE_API_ERROR: status=%d body=%s", res.StatusCode, string(body))
	}

	var response headOfficeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("HEADOFFICE_UNMARSHAL_ERROR: %v", err)
	}
	if response.Answer == "" {
		return "", fmt.Errorf("HEADOFFICE_EMPTY_ANSWER: %s", string(body))
	}

	return response.Answer, nil
}
