package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/lankamart/storefront/models"
)

const DefaultModel = "gemini-3-flash-preview"

// generator is the slice of *genai.Models the storefront calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGenAIClient creates a Gemini API client.
func NewGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

// GenAIMatcher asks a Gemini model which catalog entries fit a query by
// intent rather than spelling ("hotpot" finds seafood and spices).
type GenAIMatcher struct {
	gen   generator
	model string
}

func NewGenAIMatcher(client *genai.Client, model string) *GenAIMatcher {
	return newGenAIMatcher(client.Models, model)
}

func newGenAIMatcher(gen generator, model string) *GenAIMatcher {
	if model == "" {
		model = DefaultModel
	}
	return &GenAIMatcher{gen: gen, model: model}
}

var matchSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"matches": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
}

type matchResponse struct {
	Matches []string `json:"matches"`
}

func (m *GenAIMatcher) Match(ctx context.Context, query string, catalog []Entry, lang models.Language) ([]string, error) {
	snapshot, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}

	prompt := strings.Join([]string{
		"You are the search engine of Lanka Mart, a Sri Lankan grocery store.",
		"Find the products that best fit the customer's intent (semantic search), not just the spelling.",
		`For example "hotpot" should find seafood and spices, "beer snacks" should find beer, crackers and dried shrimp.`,
		fmt.Sprintf("Catalog (language %s): %s", lang, snapshot),
		fmt.Sprintf("Customer query: %q", query),
		`Answer with JSON {"matches": [product ids]} ordered by relevance.`,
	}, "\n")

	resp, err := m.gen.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   matchSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var parsed matchResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return parsed.Matches, nil
}
