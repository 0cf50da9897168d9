package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini: empty response")

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string
	Timeout time.Duration
}

// WebSource is a page a grounded answer was based on.
type WebSource struct {
	URI   string
	Title string
}

// GroundedText is a free-text answer with the web pages it was grounded on.
type GroundedText struct {
	Text    string
	Sources []WebSource
}

// Client generates content through the Gemini API.
type Client struct {
	models *genai.Models
	model  string
	debug  bool
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		// zero means no client-side timeout
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		models: client.Models,
		model:  cfg.Model,
		debug:  os.Getenv("ENV") == "development",
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

// GenerateJSON asks for a JSON answer constrained by schema and returns the raw text.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateGrounded asks for a free-text answer grounded with Google Search.
func (c *Client) GenerateGrounded(ctx context.Context, prompt string) (*GroundedText, error) {
	resp, err := c.generate(ctx, prompt, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, err
	}
	return &GroundedText{Text: resp.Text(), Sources: webSources(resp)}, nil
}

func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), config)

	if c.debug {
		log.Debug().
			Str("model", c.model).
			Int("prompt_chars", len(prompt)).
			Dur("took", time.Since(start)).
			Err(err).
			Msg("[GEMINI] generateContent")
	}

	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	return resp, nil
}

// webSources returns the web grounding chunks of the first candidate.
func webSources(resp *genai.GenerateContentResponse) []WebSource {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var out []WebSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		out = append(out, WebSource{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return out
}
