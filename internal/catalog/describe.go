package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// FallbackDescription is returned whenever the text-generation collaborator
// cannot produce a description, for any reason.
const FallbackDescription = "Standard professional product. High quality and durable."

// Describer produces a short marketing description for a product. It never
// fails: any problem yields the fixed fallback text.
type Describer interface {
	Describe(ctx context.Context, name, category string) string
}

// StaticDescriber is used when no generation endpoint is configured.
type StaticDescriber struct{}

func (StaticDescriber) Describe(context.Context, string, string) string {
	return FallbackDescription
}

// HTTPDescriber calls an external text-generation endpoint.
type HTTPDescriber struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewHTTPDescriber(endpoint, apiKey string, timeout time.Duration) *HTTPDescriber {
	return &HTTPDescriber{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

type describeRequest struct {
	Prompt string `json:"prompt"`
}

type describeResponse struct {
	Text string `json:"text"`
}

func (d *HTTPDescriber) Describe(ctx context.Context, name, category string) string {
	prompt := fmt.Sprintf(
		"Generate a short, professional, and compelling e-commerce product description for a product named %q in the category %q. Keep it under 150 characters.",
		name, category)

	body, err := json.Marshal(describeRequest{Prompt: prompt})
	if err != nil {
		log.Printf("describe: marshal request failed: %v", err)
		return FallbackDescription
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("describe: build request failed: %v", err)
		return FallbackDescription
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		log.Printf("describe: request failed: %v", err)
		return FallbackDescription
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("describe: endpoint returned %d", resp.StatusCode)
		return FallbackDescription
	}

	var parsed describeResponse
	if e2 := json.NewDecoder(resp.Body).Decode(&parsed); e2 != nil || parsed.Text == "" {
		log.Printf("describe: bad response payload: %v", e2)
		return FallbackDescription
	}

	return parsed.Text
}
