package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zjrosen/dinoguessr/internal/log"
)

// HTTPDoer abstracts the HTTP client used to reach the chat completions endpoint.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GenerativeProvider asks an OpenAI-compatible model to write options, hints
// and fun facts for dinosaurs picked from the local catalog. Any failure falls
// back to the local provider.
type GenerativeProvider struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	client  HTTPDoer
	local   *LocalProvider
}

// NewGenerativeProvider creates a provider. A nil client uses http.DefaultClient.
func NewGenerativeProvider(baseURL, apiKey, model string, timeout time.Duration, client HTTPDoer, local *LocalProvider) *GenerativeProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &GenerativeProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		client:  client,
		local:   local,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type generatedQuiz struct {
	Questions []struct {
		Options []string `json:"options"`
		FunFact string   `json:"funFact"`
		Hint    string   `json:"hint"`
	} `json:"questions"`
}

// GetQuiz implements Provider.
func (p *GenerativeProvider) GetQuiz(ctx context.Context, d Difficulty) (Quiz, error) {
	selected, err := p.local.pick(d)
	if err != nil {
		return Quiz{}, err
	}

	q, err := p.generate(ctx, d, selected)
	if err != nil {
		log.Warn(log.CatQuiz, "Generated quiz unusable, falling back to local content", "error", err, "model", p.model)
		return p.local.GetQuiz(ctx, d)
	}
	return q, nil
}

func (p *GenerativeProvider) generate(ctx context.Context, d Difficulty, selected []Dinosaur) (Quiz, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	names := make([]string, len(selected))
	for i, dino := range selected {
		names[i] = dino.Name
	}

	content, err := p.complete(ctx, buildQuizPrompt(d, names, p.local.Catalog().Names()))
	if err != nil {
		return Quiz{}, err
	}

	var gen generatedQuiz
	if err := json.Unmarshal([]byte(extractJSON(content)), &gen); err != nil {
		return Quiz{}, fmt.Errorf("decoding generated quiz: %w", err)
	}
	if len(gen.Questions) != len(selected) {
		return Quiz{}, fmt.Errorf("generated %d questions, want %d", len(gen.Questions), len(selected))
	}

	questions := make([]Question, len(selected))
	for i, dino := range selected {
		g := gen.Questions[i]
		question := Question{
			CorrectAnswer: dino.Name,
			Options:       g.Options,
			ImageURL:      dino.Image,
			Hint:          strings.TrimSpace(g.Hint),
			FunFact:       strings.TrimSpace(g.FunFact),
		}
		if question.Hint == "" {
			question.Hint = FallbackHint(dino.Name)
		}
		if question.FunFact == "" {
			question.FunFact = FallbackFunFact(dino.Name)
		}
		if err := question.Validate(d.Options()); err != nil {
			return Quiz{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions[i] = question
	}

	log.Debug(log.CatQuiz, "Built generated quiz", "difficulty", d, "questions", len(questions), "model", p.model)
	return Quiz{Questions: questions}, nil
}

func (p *GenerativeProvider) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You write dinosaur trivia. Reply with a single JSON object and nothing else."},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.7,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat completion: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

func buildQuizPrompt(d Difficulty, names, all []string) string {
	n := d.Options()
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a quiz with exactly %d questions.\n", len(names))
	fmt.Fprintf(&b, "The questions must be about these dinosaurs, in this exact order: %s.\n", strings.Join(names, ", "))
	b.WriteString("For each dinosaur produce an object with:\n")
	fmt.Fprintf(&b, "1. \"options\": %d distinct names, one of them the dinosaur itself, the other %d plausible names taken from this list: %s.\n", n, n-1, strings.Join(all, ", "))
	b.WriteString("2. \"funFact\": a short, engaging fun fact about the dinosaur.\n")
	b.WriteString("3. \"hint\": a helpful clue that does not give the name away.\n")
	b.WriteString("Return {\"questions\": [...]} with the questions in the same order as the dinosaurs above. ")
	b.WriteString("Do not include a correctAnswer field and do not use markdown.")
	return b.String()
}

// extractJSON returns the first balanced {...} object in s, skipping any
// prose or code fences the model wrapped around it.
func extractJSON(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return s
}
