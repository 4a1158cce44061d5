package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"juriscrm/models"

	"github.com/goccy/go-json"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	ErrAIClientNotSet   = errors.New("ai client not set")
	ErrAIEmptyResponse  = errors.New("ai returned an empty response")
	ErrAIInvalidPayload = errors.New("ai returned an unparseable payload")
)

const (
	defaultModel   = "gemini-2.0-flash"
	maxRetries     = 3
	initialBackoff = time.Second
)

// AIService wraps the text-analysis collaborator: case summaries, task
// suggestions from case notes, and client-data extraction from documents.
// All failures are transient from the caller's perspective; re-invoking the
// same action retries from scratch and local state is never touched here.
type AIService struct {
	client    *genai.Client
	modelName string
}

// AIServiceOption is a functional option for AIService
type AIServiceOption func(*AIService)

// AIWithClient sets the Gemini client
func AIWithClient(client *genai.Client) AIServiceOption {
	return func(s *AIService) {
		s.client = client
	}
}

// AIWithModel overrides the generation model name
func AIWithModel(name string) AIServiceOption {
	return func(s *AIService) {
		s.modelName = name
	}
}

// NewGeminiClient creates the Gemini API client used by AIService
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

// NewAIService creates a new AI service
func NewAIService(opts ...AIServiceOption) *AIService {
	s := &AIService{modelName: defaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generate runs one generation call with retry and exponential backoff.
// Context cancellation aborts immediately so a torn-down caller never
// receives (and never applies) a stale result.
func (s *AIService) generate(ctx context.Context, jsonOutput bool, parts ...genai.Part) (string, error) {
	if s.client == nil {
		return "", ErrAIClientNotSet
	}

	model := s.client.GenerativeModel(s.modelName)
	if jsonOutput {
		model.ResponseMIMEType = "application/json"
	}

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := model.GenerateContent(ctx, parts...)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}

		text := responseText(resp)
		if text == "" {
			lastErr = ErrAIEmptyResponse
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", maxRetries, lastErr)
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// GenerateCaseSummary produces a prose summary of the case for the lawyer
func (s *AIService) GenerateCaseSummary(ctx context.Context, kase models.Case, clientName string) (string, error) {
	prompt := fmt.Sprintf(`Você é um assistente jurídico especializado em direito previdenciário.
Escreva um resumo objetivo do caso abaixo para o advogado responsável.
Use ### para títulos de seção e ** para destaques.

Cliente: %s
Número do caso: %s
Tipo de benefício: %s
Status atual: %s
Data de início: %s

Notas e andamentos:
%s`,
		clientName, kase.CaseNumber, kase.BenefitType, kase.Status, kase.StartDate, kase.Notes)

	return s.generate(ctx, false, genai.Text(prompt))
}

// SuggestTasksFromNotes extracts actionable tasks from the free-text notes
// log of a case.
func (s *AIService) SuggestTasksFromNotes(ctx context.Context, notes string) ([]models.SuggestedTask, error) {
	prompt := fmt.Sprintf(`Analise as notas de andamento de um caso previdenciário abaixo e
sugira as próximas tarefas concretas para o advogado. Responda somente com um
array JSON de objetos {"description": string, "dueDate": "YYYY-MM-DD" (opcional), "reasoning": string}.

Notas:
%s`, notes)

	raw, err := s.generate(ctx, true, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	return ParseSuggestedTasks(raw)
}

// ExtractClientInfo pulls client-identification fields out of the plain text
// of an identity document.
func (s *AIService) ExtractClientInfo(ctx context.Context, text string) (map[string]string, error) {
	raw, err := s.generate(ctx, true, genai.Text(extractionPrompt), genai.Text(text))
	if err != nil {
		return nil, err
	}
	return ParseClientInfo(raw)
}

// ExtractClientInfoFromImage pulls client-identification fields out of a
// scanned or photographed identity document.
func (s *AIService) ExtractClientInfoFromImage(ctx context.Context, data []byte, mimeType string) (map[string]string, error) {
	format := strings.TrimPrefix(mimeType, "image/")
	raw, err := s.generate(ctx, true, genai.Text(extractionPrompt), genai.ImageData(format, data))
	if err != nil {
		return nil, err
	}
	return ParseClientInfo(raw)
}

const extractionPrompt = `Extraia os dados de identificação da pessoa a partir do documento a seguir.
Responda somente com um objeto JSON usando as chaves que conseguir preencher dentre:
name, cpf, rg, rgIssuer, rgIssuerUF, dataEmissao, motherName, fatherName,
dateOfBirth, nacionalidade, naturalidade, estadoCivil, profissao.
Datas no formato YYYY-MM-DD. Omita chaves não encontradas.`

// stripFences removes a surrounding markdown code fence, which models emit
// even when asked for raw JSON.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}

// ParseSuggestedTasks decodes the serialized task-suggestion payload
func ParseSuggestedTasks(raw string) ([]models.SuggestedTask, error) {
	var tasks []models.SuggestedTask
	if err := json.Unmarshal([]byte(stripFences(raw)), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIInvalidPayload, err)
	}
	return tasks, nil
}

// ParseClientInfo decodes the serialized client-extraction payload
func ParseClientInfo(raw string) (map[string]string, error) {
	fields := make(map[string]string)
	if err := json.Unmarshal([]byte(stripFences(raw)), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIInvalidPayload, err)
	}
	return fields, nil
}
