package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pageza/nutriai/backend/internal/models"
)

// Schema names accepted by Generator.Generate.
const (
	SchemaNone     = ""
	SchemaMealPlan = "meal_plan"
	SchemaRecipe   = "recipe"
	SchemaMeal     = "meal"
)

// GeminiGenerator answers prompts with Google Gemini.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// Ensure GeminiGenerator implements Generator and ChatModel
var (
	_ Generator = (*GeminiGenerator)(nil)
	_ ChatModel = (*GeminiGenerator)(nil)
)

// NewGeminiGenerator creates a client for the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends prompt to the model. With a schema name other than
// SchemaNone the model is asked for JSON matching that schema.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt, schema string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	if s, ok := responseSchemas[schema]; ok {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = s
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		g.logger.Error("Gemini request failed", zap.String("model", g.model), zap.Error(err))
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}

	text := resp.Text()
	g.logger.Debug("Gemini response", zap.String("schema", schema), zap.Int("length", len(text)))
	if text == "" {
		return "", errors.New("no response from Gemini")
	}
	return text, nil
}

// Chat replays history into a new chat session and sends message.
func (g *GeminiGenerator) Chat(ctx context.Context, instruction string, history []models.ChatMessage, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == models.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	chat, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}, contents)
	if err != nil {
		return "", fmt.Errorf("failed to start Gemini chat: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		g.logger.Error("Gemini chat failed", zap.String("model", g.model), zap.Int("history", len(history)), zap.Error(err))
		return "", fmt.Errorf("Gemini chat failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no response from Gemini")
	}
	return text, nil
}

const systemInstruction = "You are a professional nutritionist and chef. Answer in English."

var (
	nutritionSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"calories": {Type: genai.TypeNumber},
			"protein":  {Type: genai.TypeNumber},
			"carbs":    {Type: genai.TypeNumber},
			"fat":      {Type: genai.TypeNumber},
		},
		Required: []string{"calories", "protein", "carbs", "fat"},
	}

	mealSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"nutrition":   nutritionSchema,
		},
		Required: []string{"name", "description", "nutrition"},
	}

	stringList = &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	responseSchemas = map[string]*genai.Schema{
		SchemaMeal: mealSchema,
		SchemaMealPlan: {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {Type: genai.TypeString, Description: "A short, creative name for the plan."},
				"dailyPlan": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"breakfast": mealSchema,
						"lunch":     mealSchema,
						"dinner":    mealSchema,
						"snacks":    {Type: genai.TypeArray, Items: mealSchema},
					},
					Required: []string{"breakfast", "lunch", "dinner"},
				},
				"totalNutrition": nutritionSchema,
				"substitutions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"original":    {Type: genai.TypeString},
							"replacement": {Type: genai.TypeString},
						},
						Required: []string{"original", "replacement"},
					},
				},
				"shoppingList": stringList,
			},
			Required: []string{"name", "dailyPlan", "totalNutrition", "substitutions", "shoppingList"},
		},
		SchemaRecipe: {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":         {Type: genai.TypeString},
				"description":  {Type: genai.TypeString},
				"prepTime":     {Type: genai.TypeString, Description: "Preparation time, e.g. '15 minutes'."},
				"cookTime":     {Type: genai.TypeString, Description: "Cooking time, e.g. '20 minutes'."},
				"servings":     {Type: genai.TypeInteger},
				"ingredients":  stringList,
				"instructions": stringList,
				"nutrition":    nutritionSchema,
			},
			Required: []string{"name", "description", "prepTime", "cookTime", "servings", "ingredients", "instructions", "nutrition"},
		},
	}
)
