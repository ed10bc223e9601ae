package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	mu     sync.Mutex
	path   string
	header http.Header
}

func (s *seenRequest) get() (string, http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.header
}

// fakeCompletions answers chat completion requests with content(), wrapped the
// way OpenAI-compatible servers do.
func fakeCompletions(t *testing.T, status int, content func() string) (*httptest.Server, *seenRequest) {
	t.Helper()
	last := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.mu.Lock()
		last.path = r.URL.Path
		last.header = r.Header.Clone()
		last.mu.Unlock()
		if status != http.StatusOK {
			http.Error(w, "upstream unavailable", status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content()}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, last
}

// generatedFor builds a well-formed model reply for the dinosaurs a provider
// seeded with seed will pick.
func generatedFor(t *testing.T, seed uint64, d Difficulty) string {
	t.Helper()
	catalog := DefaultCatalog()
	picked, err := NewLocalProvider(catalog, nil, seeded(seed)).pick(d)
	require.NoError(t, err)

	type item struct {
		Options []string `json:"options"`
		FunFact string   `json:"funFact"`
		Hint    string   `json:"hint"`
	}
	var items []item
	for _, dino := range picked {
		opts := []string{dino.Name}
		for _, name := range catalog.Names() {
			if len(opts) == d.Options() {
				break
			}
			if name != dino.Name {
				opts = append(opts, name)
			}
		}
		items = append(items, item{
			Options: opts,
			FunFact: "Fun: " + dino.Name,
			Hint:    "Clue: " + dino.Name,
		})
	}
	data, err := json.Marshal(map[string]any{"questions": items})
	require.NoError(t, err)
	return "```json\n" + string(data) + "\n```"
}

func TestGenerativeProvider_UsesModelContent(t *testing.T) {
	const seed = 42
	reply := generatedFor(t, seed, Medium)
	srv, last := fakeCompletions(t, http.StatusOK, func() string { return reply })

	local := NewLocalProvider(DefaultCatalog(), nil, seeded(seed))
	p := NewGenerativeProvider(srv.URL+"/", "sk-test", "test-model", time.Second, srv.Client(), local)

	q, err := p.GetQuiz(context.Background(), Medium)
	require.NoError(t, err)
	require.NoError(t, q.Validate(Medium))

	for _, question := range q.Questions {
		assert.Equal(t, "Clue: "+question.CorrectAnswer, question.Hint)
		assert.Equal(t, "Fun: "+question.CorrectAnswer, question.FunFact)
		assert.Equal(t, "assets/"+question.CorrectAnswer+".jpg", question.ImageURL)
	}

	path, header := last.get()
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "Bearer sk-test", header.Get("Authorization"))
}

func TestGenerativeProvider_FallsBack(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"http error", http.StatusServiceUnavailable, ""},
		{"not json", http.StatusOK, "Sorry, I can't help with that."},
		{"wrong count", http.StatusOK, `{"questions": [{"options": ["A", "B", "C"], "hint": "h", "funFact": "f"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fakeCompletions(t, tt.status, func() string { return tt.content })
			local := NewLocalProvider(DefaultCatalog(), nil, seeded(5))
			p := NewGenerativeProvider(srv.URL, "", "test-model", time.Second, srv.Client(), local)

			q, err := p.GetQuiz(context.Background(), Easy)
			require.NoError(t, err, "failures degrade to local content")
			require.NoError(t, q.Validate(Easy))
			for _, question := range q.Questions {
				assert.Equal(t, FallbackHint(question.CorrectAnswer), question.Hint)
			}
		})
	}
}

func TestGenerativeProvider_RejectsBadOptions(t *testing.T) {
	const seed = 9
	picked, err := NewLocalProvider(DefaultCatalog(), nil, seeded(seed)).pick(Easy)
	require.NoError(t, err)

	// every question offers two wrong names, never the correct one
	var items []string
	for range picked {
		items = append(items, `{"options": ["Nobody", "Nothing"], "hint": "h", "funFact": "f"}`)
	}
	reply := fmt.Sprintf(`{"questions": [%s]}`, strings.Join(items, ","))
	srv, _ := fakeCompletions(t, http.StatusOK, func() string { return reply })

	local := NewLocalProvider(DefaultCatalog(), nil, seeded(seed))
	p := NewGenerativeProvider(srv.URL, "", "test-model", time.Second, srv.Client(), local)

	q, err := p.GetQuiz(context.Background(), Easy)
	require.NoError(t, err)
	require.NoError(t, q.Validate(Easy))
	assert.Equal(t, FallbackHint(q.Questions[0].CorrectAnswer), q.Questions[0].Hint)
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := buildQuizPrompt(Hard, []string{"Troodon", "Baryonyx"}, []string{"Troodon", "Baryonyx", "Oviraptor"})
	assert.Contains(t, prompt, "exactly 2 questions")
	assert.Contains(t, prompt, "in this exact order: Troodon, Baryonyx.")
	assert.Contains(t, prompt, "4 distinct names")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", `Here you go: {"a":{"b":2}} enjoy`, `{"a":{"b":2}}`},
		{"brace in string", `{"a":"}"}`, `{"a":"}"}`},
		{"no object", `nothing here`, `nothing here`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}
