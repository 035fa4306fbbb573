package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lareinaLY/baby-meal-recommendation/models"
)

// TextExplanationPort turns structured recommendation output into
// parent-friendly prose. The port is optional everywhere it is
// consumed: a nil port or a failed call must never change scores, only
// drop the embellishment.
type TextExplanationPort interface {
	// Explain rewrites a technical reason for one recommended recipe.
	Explain(ctx context.Context, recipe *models.Recipe, baby *models.Baby, technicalReason string) (string, error)
	// SuggestAlternatives proposes swaps for a disliked ingredient.
	SuggestAlternatives(ctx context.Context, ingredient string, baby *models.Baby, nutritionGroup, rejectionReason string) ([]AlternativeSuggestion, error)
	// Summarize writes the overall strategy message for a smart
	// recommendation response.
	Summarize(ctx context.Context, baby *models.Baby, recipeNames []string, retryCount, alternativeCount int) (string, error)
}

// OpenAIExplanationService implements TextExplanationPort against the
// OpenAI chat completions API.
type OpenAIExplanationService struct {
	client *openai.Client
	model  string

	Now func() time.Time
}

func NewOpenAIExplanationService(apiKey, model string) *OpenAIExplanationService {
	return &OpenAIExplanationService{
		client: openai.NewClient(apiKey),
		model:  model,
		Now:    time.Now,
	}
}

func (s *OpenAIExplanationService) Explain(ctx context.Context, recipe *models.Recipe, baby *models.Baby, technicalReason string) (string, error) {
	prompt := fmt.Sprintf(`You are a certified infant nutrition expert. Generate a warm, informative explanation for why this recipe is recommended.

Baby Profile:
- Name: %s
- Age: %d months (%s stage)
- Allergies: %s
- Likes: %s

Recommended Recipe: %s
Key nutrients:
- Protein: %.1fg
- Iron: %.1fmg
- Calcium: %.1fmg
- Fiber: %.1fg

Technical reason: %s

Generate a 2-3 sentence explanation that:
1. Explains nutritional benefits in parent-friendly language
2. Mentions why it's suitable for this baby's age and preferences`,
		baby.Name,
		baby.AgeMonths(s.Now()), baby.AgeStage(s.Now()),
		listOrDefault(baby.Allergies, "None"),
		listOrDefault(baby.LikedIngredients, "exploring new foods"),
		recipe.Name,
		recipe.ProteinG, recipe.IronMg, recipe.CalciumMg, recipe.FiberG,
		technicalReason,
	)

	return s.complete(ctx, prompt, 200)
}

func (s *OpenAIExplanationService) SuggestAlternatives(ctx context.Context, ingredient string, baby *models.Baby, nutritionGroup, rejectionReason string) ([]AlternativeSuggestion, error) {
	prompt := fmt.Sprintf(`You are an infant nutrition expert. A baby rejected %s.

Baby Profile:
- Age: %d months (%s stage)
- Already likes: %s
- Rejection reason: %s

Nutrition group of %s: %s

Suggest 3 alternatives that provide similar nutrition, have different taste/texture, are age-appropriate, and consider what baby already likes.

Format as JSON:
{
  "alternatives": [
    {"ingredient": "...", "reason": "...", "preparation_tip": "..."}
  ]
}`,
		ingredient,
		baby.AgeMonths(s.Now()), baby.AgeStage(s.Now()),
		listOrDefault(baby.LikedIngredients, "still exploring"),
		rejectionReason,
		ingredient, nutritionGroupOrDefault(nutritionGroup),
	)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens: 400,
	})
	if err != nil {
		return nil, fmt.Errorf("alternative suggestion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	var parsed struct {
		Alternatives []AlternativeSuggestion `json:"alternatives"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("decode alternatives: %w", err)
	}
	return parsed.Alternatives, nil
}

func (s *OpenAIExplanationService) Summarize(ctx context.Context, baby *models.Baby, recipeNames []string, retryCount, alternativeCount int) (string, error) {
	if len(recipeNames) > 5 {
		recipeNames = recipeNames[:5]
	}
	prompt := fmt.Sprintf(`Summarize this meal recommendation strategy for parents.

Baby: %s, %d months

Today's recommendations:
%s

Foods being retried: %d
Alternative ingredients suggested: %d

Write a brief, warm message (2-3 sentences) explaining the strategy.
Keep it encouraging and parent-friendly.`,
		baby.Name, baby.AgeMonths(s.Now()),
		"- "+strings.Join(recipeNames, "\n- "),
		retryCount, alternativeCount,
	)

	return s.complete(ctx, prompt, 150)
}

func (s *OpenAIExplanationService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func listOrDefault(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func nutritionGroupOrDefault(group string) string {
	roles := map[string]string{
		"vitamin_a_sources": "Essential for vision, immune function, and skin health",
		"iron_sources":      "Critical for blood formation and cognitive development",
		"calcium_sources":   "Vital for bone development and muscle function",
		"protein_sources":   "Building blocks for growth and development",
		"vitamin_c_sources": "Supports immune system and iron absorption",
	}
	if role, ok := roles[group]; ok {
		return role
	}
	return "Important for balanced nutrition"
}
