package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

// GeminiEstimator fills in nutrition facts for new pantry items
type GeminiEstimator struct {
	client *genai.Client
}

func NewGeminiEstimator(ctx context.Context, apiKey string) (*GeminiEstimator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiEstimator{client: client}, nil
}

func (e *GeminiEstimator) Close() error {
	return e.client.Close()
}

// estimateResult mirrors the JSON the model is asked to produce
type estimateResult struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Sugar    *float64 `json:"sugar"`
	Sodium   *float64 `json:"sodium"`
	Vitamins []string `json:"vitamins"`
}

func estimatePrompt(name string, category domain.Category) string {
	return fmt.Sprintf(`You are a pediatric nutrition expert helping parents pack school lunches.
Estimate the nutrition facts of ONE kid-sized serving of the following food.

FOOD: %s
CATEGORY: %s

REQUIREMENTS:
- Use standard nutritional databases
- Calories in kcal, sodium in mg, everything else in grams
- All numbers must be zero or positive
- List the main vitamins as short names such as "A", "C", "B12"

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting or explanatory text
- The JSON must have these exact fields:
  {
    "calories": 95,
    "protein": 0.5,
    "carbs": 25,
    "fat": 0.3,
    "fiber": 4.4,
    "sugar": 19,
    "sodium": 2,
    "vitamins": ["C"]
  }`, name, category)
}

func (e *GeminiEstimator) Estimate(ctx context.Context, name string, category domain.Category) (*domain.NutritionInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("ingredient name is required")
	}
	if !category.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown category %q", category))
	}

	model := e.client.GenerativeModel(geminiModel)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx, genai.Text(estimatePrompt(name, category)))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "gemini")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("empty response"), "gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("unexpected response part %T", resp.Candidates[0].Content.Parts[0]), "gemini")
	}

	info, err := parseNutritionResponse(string(text))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "gemini")
	}
	return info, nil
}

func parseNutritionResponse(text string) (*domain.NutritionInfo, error) {
	// Extract JSON from the response, handling code blocks or text wrapping
	jsonStr := extractJSON(text)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var result estimateResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	fields := []struct {
		name  string
		value *float64
	}{
		{"calories", result.Calories},
		{"protein", result.Protein},
		{"carbs", result.Carbs},
		{"fat", result.Fat},
		{"fiber", result.Fiber},
		{"sugar", result.Sugar},
		{"sodium", result.Sodium},
	}
	for _, f := range fields {
		if f.value == nil {
			return nil, fmt.Errorf("response is missing %s", f.name)
		}
		if *f.value < 0 {
			return nil, fmt.Errorf("response has negative %s", f.name)
		}
	}

	return &domain.NutritionInfo{
		Calories: *result.Calories,
		Protein:  *result.Protein,
		Carbs:    *result.Carbs,
		Fat:      *result.Fat,
		Fiber:    *result.Fiber,
		Sugar:    *result.Sugar,
		Sodium:   *result.Sodium,
		Vitamins: cleanList(result.Vitamins),
	}, nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// NoEstimator is used when no Gemini key is configured
type NoEstimator struct{}

func (NoEstimator) Estimate(ctx context.Context, name string, category domain.Category) (*domain.NutritionInfo, error) {
	return nil, apperrors.ErrEstimatorUnavailable
}
