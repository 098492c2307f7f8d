package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"codeberg.org/snonux/jsonlingo/internal/testutil"
	"codeberg.org/snonux/jsonlingo/internal/tree"
)

func mustDecode(t *testing.T, s string) tree.Value {
	t.Helper()
	v, err := tree.Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode(%s) error: %v", s, err)
	}
	return v
}

func newTestTranslator(port *testutil.StubPort, gateSize int) *Translator {
	return New(port, NewGate(gateSize), nil)
}

func TestTranslateTreeShapePreservation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "flat object",
			input: `{"q":"hello","n":42}`,
			want:  `{"q":"HELLO","n":42}`,
		},
		{
			name:  "nested containers",
			input: `{"a":{"b":["x",{"c":"y"}]},"d":true}`,
			want:  `{"a":{"b":["X",{"c":"Y"}]},"d":true}`,
		},
		{
			name:  "top-level string",
			input: `"hello"`,
			want:  `"HELLO"`,
		},
		{
			name:  "top-level array",
			input: `["a",1,"b",null]`,
			want:  `["A",1,"B",null]`,
		},
		{
			name:  "key order survives",
			input: `{"zz":"a","aa":"b","mm":3}`,
			want:  `{"zz":"A","aa":"B","mm":3}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translator := newTestTranslator(&testutil.StubPort{}, 4)

			got, err := translator.TranslateTree(context.Background(), mustDecode(t, tt.input))
			if err != nil {
				t.Fatalf("TranslateTree error: %v", err)
			}

			want := mustDecode(t, tt.want)
			if !tree.Equal(got, want) {
				gotJSON, _ := tree.Encode(got)
				t.Errorf("TranslateTree = %s, want %s", gotJSON, tt.want)
			}
		})
	}
}

func TestTranslateTreeLeafOnlyMutation(t *testing.T) {
	input := `{"n":0.30,"b":false,"x":null,"big":123456789012345678901}`
	translator := newTestTranslator(&testutil.StubPort{}, 4)

	got, err := translator.TranslateTree(context.Background(), mustDecode(t, input))
	if err != nil {
		t.Fatalf("TranslateTree error: %v", err)
	}

	out, err := tree.Encode(got)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if string(out) != input {
		t.Errorf("non-string scalars changed: got %s, want %s", out, input)
	}
}

func TestTranslateTreeInputNotMutated(t *testing.T) {
	input := mustDecode(t, `{"a":["x","y"],"b":"z"}`)
	before, _ := tree.Encode(input)

	translator := newTestTranslator(&testutil.StubPort{}, 4)
	if _, err := translator.TranslateTree(context.Background(), input); err != nil {
		t.Fatalf("TranslateTree error: %v", err)
	}

	after, _ := tree.Encode(input)
	if string(before) != string(after) {
		t.Errorf("input mutated: %s -> %s", before, after)
	}
}

func TestTranslateTreePositionalCorrectness(t *testing.T) {
	// "a" completes last even though it is submitted first; results must
	// still land by position, not completion order.
	port := &testutil.StubPort{
		Delay:    time.Millisecond,
		DelayFor: map[string]time.Duration{"a": 50 * time.Millisecond},
	}
	translator := newTestTranslator(port, 4)

	got, err := translator.TranslateTree(context.Background(), mustDecode(t, `["a","b","c"]`))
	if err != nil {
		t.Fatalf("TranslateTree error: %v", err)
	}

	want := mustDecode(t, `["A","B","C"]`)
	if !tree.Equal(got, want) {
		gotJSON, _ := tree.Encode(got)
		t.Errorf("TranslateTree = %s, want [\"A\",\"B\",\"C\"]", gotJSON)
	}
}

func TestTranslateTreeConcurrencyCap(t *testing.T) {
	// 50 leaves against a gate of 4: never more than 4 in-flight calls.
	leaves := make(tree.Array, 50)
	for i := range leaves {
		leaves[i] = tree.String(fmt.Sprintf("leaf-%d", i))
	}

	port := &testutil.StubPort{Delay: 2 * time.Millisecond}
	translator := newTestTranslator(port, 4)

	if _, err := translator.TranslateTree(context.Background(), leaves); err != nil {
		t.Fatalf("TranslateTree error: %v", err)
	}

	if got := port.MaxInFlight(); got > 4 {
		t.Errorf("observed %d concurrent calls, cap is 4", got)
	}
	if got := port.CallCount(); got != 50 {
		t.Errorf("backend called %d times, want 50", got)
	}
}

func TestTranslateTreeDegenerateInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty object", `{}`},
		{"empty array", `[]`},
		{"opaque scalars only", `{"a":1,"b":[true,null],"c":{"d":2.5}}`},
		{"lone number", `7`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &testutil.StubPort{}
			translator := newTestTranslator(port, 4)

			input := mustDecode(t, tt.input)
			got, err := translator.TranslateTree(context.Background(), input)
			if err != nil {
				t.Fatalf("TranslateTree error: %v", err)
			}

			if !tree.Equal(got, input) {
				t.Errorf("degenerate input changed shape or content")
			}
			if port.CallCount() != 0 {
				t.Errorf("backend called %d times, want 0", port.CallCount())
			}
		})
	}
}

func TestTranslateTreeLeafFailure(t *testing.T) {
	portErr := errors.New("remote rejection")
	port := &testutil.StubPort{
		Errs: map[string]error{"bad": portErr},
	}
	translator := newTestTranslator(port, 4)

	_, err := translator.TranslateTree(context.Background(),
		mustDecode(t, `{"ok":"good","broken":{"deep":"bad"}}`))
	if err == nil {
		t.Fatal("TranslateTree succeeded, want error")
	}

	var leafErr *LeafError
	if !errors.As(err, &leafErr) {
		t.Fatalf("error is %T, want *LeafError", err)
	}
	if leafErr.Path != "$.broken.deep" {
		t.Errorf("Path = %q, want $.broken.deep", leafErr.Path)
	}
	if !errors.Is(err, portErr) {
		t.Errorf("error chain does not contain the port failure")
	}
}

func TestTranslateTreeFailureCancelsSiblings(t *testing.T) {
	// The gate admits every leaf at once; the failing one returns
	// immediately and the slow siblings must be cancelled rather than
	// sleep out their full delay.
	leaves := make(tree.Array, 20)
	for i := range leaves {
		leaves[i] = tree.String(fmt.Sprintf("slow-%d", i))
	}
	leaves[0] = tree.String("bad")

	port := &testutil.StubPort{
		Delay:    5 * time.Second,
		DelayFor: map[string]time.Duration{"bad": 0},
		Errs:     map[string]error{"bad": errors.New("boom")},
	}
	translator := newTestTranslator(port, 32)

	start := time.Now()
	_, err := translator.TranslateTree(context.Background(), leaves)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("TranslateTree succeeded, want error")
	}
	if elapsed > time.Second {
		t.Errorf("siblings were not cancelled: run took %v", elapsed)
	}
}

func TestGateReleasedAfterFailure(t *testing.T) {
	// A failed leaf must still release its permit: a second run through
	// the same gate would hang forever otherwise.
	port := &testutil.StubPort{
		Errs: map[string]error{"bad": errors.New("boom")},
	}
	gate := NewGate(1)
	translator := New(port, gate, nil)

	ctx := context.Background()
	if _, err := translator.TranslateTree(ctx, tree.String("bad")); err == nil {
		t.Fatal("TranslateTree succeeded, want error")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		translator.TranslateTree(ctx, tree.String("fine"))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("gate permit leaked by failed translation")
	}
}
