// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"lengolf/models"
)

// GeminiClient implements CompletionClient and EmbeddingClient against the
// Gemini API.
type GeminiClient struct {
	client         *genai.Client
	modelName      string
	embeddingModel string
}

func NewGeminiClient(apiKey, modelName, embeddingModel string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}
	return &GeminiClient{
		client:         client,
		modelName:      modelName,
		embeddingModel: embeddingModel,
	}
}

func (g *GeminiClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	model := g.client.GenerativeModel(g.modelName)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if len(req.Tools) > 0 {
		model.Tools = toGenaiTools(req.Tools)
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingAuto},
		}
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		contents = append(contents, toGenaiContent(m))
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("gemini complete: empty message list")
	}

	// GenerateContent takes history plus the final turn's parts.
	last := contents[len(contents)-1]
	history := contents[:len(contents)-1]

	cs := model.StartChat()
	cs.History = history
	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini generate error: no candidates returned")
	}

	var sb strings.Builder
	out := &ChatResponse{}
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			out.ToolCalls = append(out.ToolCalls, models.FunctionCall{
				Name:   models.ActionName(p.Name),
				Params: p.Args,
			})
		}
	}
	out.Text = sb.String()
	return out, nil
}

func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.embeddingModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed error: %w", err)
	}
	if res.Embedding == nil {
		return nil, fmt.Errorf("gemini embed error: empty embedding")
	}
	return res.Embedding.Values, nil
}

func toGenaiContent(m ChatMessage) *genai.Content {
	c := &genai.Content{Role: string(m.Role)}
	switch {
	case m.ToolResult != nil:
		c.Parts = append(c.Parts, genai.FunctionResponse{
			Name:     string(m.ToolResult.Name),
			Response: m.ToolResult.Response,
		})
	case len(m.ToolCalls) > 0:
		for _, call := range m.ToolCalls {
			c.Parts = append(c.Parts, genai.FunctionCall{
				Name: string(call.Name),
				Args: call.Params,
			})
		}
	default:
		c.Parts = append(c.Parts, genai.Text(m.Text))
	}
	return c
}

func toGenaiTools(schemas []ToolSchema) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(schemas))
	for _, s := range schemas {
		props := make(map[string]*genai.Schema, len(s.Params))
		for name, p := range s.Params {
			props[name] = &genai.Schema{
				Type:        toGenaiType(p.Type),
				Description: p.Description,
				Enum:        p.Enum,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   s.Required,
			},
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
