package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTextGenerate(t *testing.T) {
	guide := "## Aquecimento\n5 min de esteira\n\n## Treino\nAgachamento 4x10"
	gen := &stubGenerator{out: guide}
	tg := NewTextGenerator(gen, StaticKey("key"), Options{}, quietLogger())

	got, err := tg.Generate(context.Background(), "  Treino de pernas  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != guide {
		t.Errorf("text not returned verbatim: %q", got)
	}
	if gen.lastReq.Schema != nil {
		t.Error("text requests carry no schema")
	}
	for _, want := range []string{"Treino de pernas", "warm-up", "sets x reps", "Technique", "Rest intervals", DefaultLanguage} {
		if !strings.Contains(gen.lastReq.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestTextGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		key     string
		out     string
		genErr  error
		wantErr error
		calls   int
	}{
		{"empty topic", "   ", "key", "x", nil, ErrEmptyTopic, 0},
		{"no credential", "Pernas", "", "x", nil, ErrNoCredential, 0},
		{"transport", "Pernas", "key", "", errors.New("boom"), ErrGenerationFailed, 1},
		{"empty text", "Pernas", "key", "\n", nil, ErrGenerationFailed, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{out: tt.out, err: tt.genErr}
			tg := NewTextGenerator(gen, StaticKey(tt.key), Options{}, quietLogger())

			_, err := tg.Generate(context.Background(), tt.topic)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if gen.textCalls != tt.calls {
				t.Errorf("generator calls = %d, want %d", gen.textCalls, tt.calls)
			}
		})
	}
}

func TestCredentialFunc(t *testing.T) {
	key := ""
	creds := CredentialFunc(func() string { return key })
	if creds.APIKey() != "" {
		t.Fatal("expected empty key")
	}
	key = " abc \n"
	if creds.APIKey() != "abc" {
		t.Errorf("APIKey() = %q, want resolved at call time and trimmed", creds.APIKey())
	}
}
