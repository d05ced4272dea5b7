// Package llm provides the client for the locally-hosted completion endpoint.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client produces a free-form completion for a prompt. Implementations must
// treat endpoint failures as ordinary errors; callers decide whether a failure
// is recoverable.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Fixed sampling parameters for every completion call.
const (
	temperature = 0.7
	topK        = 40
	topP        = 0.9
	numPredict  = 256
)

// OllamaClient calls the Ollama /api/generate endpoint.
type OllamaClient struct {
	client *resty.Client
	model  string
}

// NewOllama creates a client for an Ollama server. baseURL may omit the
// scheme; http is assumed.
func NewOllama(baseURL, model string, timeout time.Duration) *OllamaClient {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &OllamaClient{client: c, model: model}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Complete sends the prompt to /api/generate and returns the model's text.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: temperature,
			TopK:        topK,
			TopP:        topP,
			NumPredict:  numPredict,
		},
	}

	var out generateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}
	return strings.TrimSpace(out.Response), nil
}

// HealthPing implements health.HealthPinger. It checks /api/tags for the
// configured model's presence.
func (c *OllamaClient) HealthPing(ctx context.Context) error {
	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&data).
		Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	want := baseModelName(c.model)
	for _, m := range data.Models {
		if baseModelName(m.Name) == want {
			return nil
		}
	}
	return fmt.Errorf("model %s not found", want)
}

// baseModelName drops the tag suffix: "llama3.2:latest" -> "llama3.2".
func baseModelName(name string) string {
	return strings.Split(name, ":")[0]
}
