package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/lankamart/storefront/models"
)

var fallbackSuggestions = map[models.Language][]string{
	models.LangVI: {"Hải sản tươi", "Đồ nhắm bia", "Gia vị lẩu", "Bánh kẹo"},
	models.LangEN: {"Fresh Seafood", "Beer snacks", "Hotpot spices", "Sweets"},
}

// Assistant produces search-box suggestions and cooking tips. Without a
// generator it serves the static fallbacks only.
type Assistant struct {
	gen   generator
	model string
	log   *zap.Logger
}

func NewAssistant(client *genai.Client, model string, log *zap.Logger) *Assistant {
	var gen generator
	if client != nil {
		gen = client.Models
	}
	return newAssistant(gen, model, log)
}

func newAssistant(gen generator, model string, log *zap.Logger) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{gen: gen, model: model, log: log}
}

// FallbackSuggestions are shown when the model cannot be reached.
func FallbackSuggestions(lang models.Language) []string {
	if lang == models.LangVI {
		return fallbackSuggestions[models.LangVI]
	}
	return fallbackSuggestions[models.LangEN]
}

// Suggestions returns four short search phrases for lang.
func (a *Assistant) Suggestions(ctx context.Context, lang models.Language) []string {
	if a.gen == nil {
		return FallbackSuggestions(lang)
	}

	langName := "English"
	if lang == models.LangVI {
		langName = "Vietnamese"
	}
	prompt := fmt.Sprintf("Suggest 4 short search phrases (2-3 words) about food, seafood or groceries that a supermarket customer might want right now. Language: %s. Answer with a JSON array of strings.", langName)

	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if err != nil {
		a.log.Warn("suggestions failed", zap.Error(err))
		return FallbackSuggestions(lang)
	}

	var phrases []string
	if err := json.Unmarshal([]byte(resp.Text()), &phrases); err != nil || len(phrases) == 0 {
		a.log.Warn("suggestions unreadable", zap.Error(err))
		return FallbackSuggestions(lang)
	}
	return phrases
}

// CookingTip suggests one dish made from p in two short sentences. A stored
// suggestion wins; failures yield "".
func (a *Assistant) CookingTip(ctx context.Context, p models.Product, lang models.Language) string {
	if p.CookingSuggestion != nil {
		if tip := p.CookingSuggestion.Get(lang); tip != "" {
			return tip
		}
	}
	if a.gen == nil {
		return ""
	}

	prompt := fmt.Sprintf("Suggest one tasty dish made from %s. Language: %s. Two short sentences.", p.Name.Get(lang), lang)
	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		a.log.Warn("cooking tip failed", zap.String("product", p.ID), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(resp.Text())
}
