// Package mood asks a Gemini model for a qualitative reading of an image's
// palette: named colours, a mood description, design usages, an accent
// colour and a typography pairing. Unlike the local analysis its output is
// not deterministic.
package mood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/chromavant/chroma/internal/colour"
)

const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	// BackendGeminiAPI selects the Gemini Developer API, authenticated with an API key.
	BackendGeminiAPI = "gemini-api"

	// BackendVertexAI selects Vertex AI, authenticated with application default credentials.
	BackendVertexAI = "vertex-ai"

	// DefaultBackend is the backend used when none is configured.
	DefaultBackend = BackendGeminiAPI
)

var (
	// ErrNoResponse is returned when the model replies without any text.
	ErrNoResponse = errors.New("no response text received from model")

	// ErrMissingAPIKey is returned when the Gemini API backend has no API key.
	ErrMissingAPIKey = errors.New("GOOGLE_API_KEY environment variable is required (get one at https://aistudio.google.com/api-keys)")
)

const prompt = `Analyze this image as an avant-garde design consultant.
1. Extract the top 5 dominant colors that form a cohesive, aesthetic palette.
2. For each color, give its Hex code, a creative name (e.g., "Midnight Void", "Electric Lime"), and a brief 3-word description of its feeling.
3. Describe the overall "Mood" of this palette in a poetic, sophisticated way.
4. Suggest 3 specific, modern design applications for this palette (e.g., "Neo-brutalist landing page", "Techwear branding").
5. Suggest one high-contrast accent color that is NOT in the image but would make the palette pop, and explain why.
6. Suggest a typography style (Serif/Sans-serif) and weight that matches this vibe.`

// Swatch is a named palette colour.
type Swatch struct {
	Hex         string `json:"hex"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Accent is a suggested accent colour with the reasoning behind it.
type Accent struct {
	Hex    string `json:"hex"`
	Reason string `json:"reason"`
}

// Analysis is the model's reading of an image.
type Analysis struct {
	Palette            []Swatch `json:"palette"`
	Mood               string   `json:"mood"`
	DesignUsage        []string `json:"design_usage"`
	ContrastSuggestion Accent   `json:"contrast_suggestion"`
	TypographyPairing  string   `json:"typography_pairing"`
}

// Config configures the model client.
type Config struct {
	Model   string
	Backend string
	APIKey  string
}

// DefaultConfig returns the default client configuration without credentials.
func DefaultConfig() Config {
	return Config{
		Model:   DefaultModel,
		Backend: DefaultBackend,
	}
}

// ConfigFromEnv returns the default configuration overridden by
// CHROMA_GENAI_MODEL, CHROMA_GENAI_BACKEND and GOOGLE_API_KEY.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CHROMA_GENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CHROMA_GENAI_BACKEND"); v != "" {
		cfg.Backend = v
	}
	cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
	return cfg
}

// ValidBackends returns the supported backend names.
func ValidBackends() []string {
	return []string{BackendGeminiAPI, BackendVertexAI}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if !slices.Contains(ValidBackends(), c.Backend) {
		return fmt.Errorf("invalid backend: %s (valid: %s)", c.Backend, strings.Join(ValidBackends(), ", "))
	}
	if c.Backend == BackendGeminiAPI && c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// contentGenerator is the part of the genai client used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client requests mood analyses from a Gemini model.
type Client struct {
	gen    contentGenerator
	model  string
	logger hclog.Logger
}

// NewClient creates a client for the configured backend.
func NewClient(ctx context.Context, cfg Config, logger hclog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if cfg.Backend == BackendVertexAI {
		clientConfig.Backend = genai.BackendVertexAI
	} else {
		clientConfig.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	return newClient(client.Models, cfg.Model, logger), nil
}

func newClient(gen contentGenerator, model string, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{gen: gen, model: model, logger: logger}
}

// Analyze sends the encoded image to the model and parses its structured reply.
func (c *Client) Analyze(ctx context.Context, data []byte, mimeType string) (*Analysis, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}

	c.logger.Debug("requesting mood analysis", "model", c.model, "mime", mimeType, "bytes", len(data))

	resp, err := c.gen.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("mood analysis failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoResponse
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if err := analysis.normalise(); err != nil {
		return nil, err
	}

	c.logger.Debug("mood analysis received", "colours", len(analysis.Palette))
	return &analysis, nil
}

// normalise rewrites every hex value as upper-case #RRGGBB.
func (a *Analysis) normalise() error {
	for i := range a.Palette {
		hex, err := normaliseHex(a.Palette[i].Hex)
		if err != nil {
			return fmt.Errorf("palette colour %d: %w", i, err)
		}
		a.Palette[i].Hex = hex
	}

	hex, err := normaliseHex(a.ContrastSuggestion.Hex)
	if err != nil {
		return fmt.Errorf("contrast suggestion: %w", err)
	}
	a.ContrastSuggestion.Hex = hex
	return nil
}

func normaliseHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	rgb, err := colour.ParseHex(s)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

func responseSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"palette": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"hex":         str,
						"name":        str,
						"description": str,
					},
					Required: []string{"hex", "name", "description"},
				},
			},
			"mood": str,
			"design_usage": {
				Type:  genai.TypeArray,
				Items: str,
			},
			"contrast_suggestion": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"hex":    str,
					"reason": str,
				},
				Required: []string{"hex", "reason"},
			},
			"typography_pairing": str,
		},
		Required: []string{"palette", "mood", "design_usage", "contrast_suggestion", "typography_pairing"},
	}
}
