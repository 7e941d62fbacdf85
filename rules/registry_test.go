package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/oaserrors"
)

// stubRule reports fixed references, or fails with err.
type stubRule struct {
	info       Info
	references []string
	err        error
	calls      chan struct{}
}

func newStub(code string, level Level, references ...string) *stubRule {
	return &stubRule{
		info: Info{
			Code:        code,
			ShortName:   "stub " + code,
			Description: "stub rule " + code,
			Level:       level,
			Type:        Miscellaneous,
		},
		references: references,
	}
}

func (s *stubRule) Info() Info { return s.info }

func (s *stubRule) Validate(ctx context.Context, _ Input) ([]ValidationMessage, error) {
	if s.calls != nil {
		s.calls <- struct{}{}
	}
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []ValidationMessage
	for _, ref := range s.references {
		out = append(out, s.info.Message(ref))
	}
	return out, nil
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(newStub("B-1", LevelInfo), newStub("A-1", LevelError))
	require.NoError(t, err)

	assert.Equal(t, []string{"A-1", "B-1"}, r.Codes())
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has("A-1"))
	assert.False(t, r.Has("C-1"))

	rule, ok := r.Rule("B-1")
	require.True(t, ok)
	assert.Equal(t, "B-1", rule.Info().Code)
	_, ok = r.Rule("C-1")
	assert.False(t, ok)

	rules := r.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "A-1", rules[0].Info().Code)

	codes := r.Codes()
	codes[0] = "mutated"
	assert.Equal(t, "A-1", r.Codes()[0], "Codes returns a copy")
}

func TestRegistryRejects(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"duplicate code", []Rule{newStub("A-1", LevelInfo), newStub("A-1", LevelError)}},
		{"nil rule", []Rule{nil}},
		{"missing metadata", []Rule{&stubRule{info: Info{Code: "A-1"}}}},
		{"invalid level", []Rule{newStub("A-1", Level(10))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.rules...)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Panics(t, func() { MustRegistry(tt.rules...) })
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, []string{
		"MIS-E001", "MIS-E002",
		"REQ-E001", "REQ-E002", "REQ-E003", "REQ-E004", "REQ-E005",
		"RES-E001", "RES-E002", "RES-E003", "RES-E004",
	}, Default().Codes())
}

func TestSelectRules(t *testing.T) {
	r := MustRegistry(newStub("A-1", LevelError), newStub("B-1", LevelError), newStub("C-1", LevelError))

	codesOf := func(rules []Rule) []string {
		out := make([]string, len(rules))
		for i, rule := range rules {
			out[i] = rule.Info().Code
		}
		return out
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{"defaults to all", nil, nil, []string{"A-1", "B-1", "C-1"}},
		{"include", []string{"C-1", "A-1"}, nil, []string{"A-1", "C-1"}},
		{"include deduplicates", []string{"B-1", "B-1"}, nil, []string{"B-1"}},
		{"exclude", nil, []string{"B-1"}, []string{"A-1", "C-1"}},
		{"exclusion wins", []string{"A-1", "B-1"}, []string{"A-1"}, []string{"B-1"}},
		{"everything excluded", nil, []string{"A-1", "B-1", "C-1"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectRules(r, tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codesOf(got))
		})
	}

	t.Run("unknown code", func(t *testing.T) {
		_, err := SelectRules(r, []string{"A-1", "Z-9"}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
		assert.Contains(t, err.Error(), "Z-9")

		_, err = SelectRules(r, nil, []string{"Y-9"})
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestExplain(t *testing.T) {
	rule, ok := Default().Rule(CodeDeletedEndpoint)
	require.True(t, ok)

	got := Explain(rule, false)
	assert.Equal(t, "[MIS-E001] Delete Endpoint:\n"+
		"\tAn endpoint has been removed. This change is not backward compatible as holders of stale swagger specs (like old mobile\n"+
		"\tApps) could continue to call the removed endpoint and this will cause an HTTP error status code (usually an HTTP/400 or\n"+
		"\tHTTP/404)\n"+
		"\n"+
		"More info on https://swagger-spec-compatibility.readthedocs.io/en/latest/rules/MIS-E001.html", got)

	colored := Explain(rule, true)
	assert.Contains(t, colored, "\x1b[1mMIS-E001\x1b[0m")
	assert.Contains(t, colored, "\x1b[1m\x1b[36mDelete Endpoint\x1b[0m")

	noLink, ok := Default().Rule(CodeAddedXNullableInResponse)
	require.True(t, ok)
	assert.NotContains(t, Explain(noLink, false), "More info on")
}

func TestExplainAll(t *testing.T) {
	got := ExplainAll([]Rule{newStub("B-1", LevelInfo), newStub("A-1", LevelInfo)}, false)
	assert.Equal(t, "Rules explanation\n[A-1] stub A-1:\n\tstub rule A-1\n[B-1] stub B-1:\n\tstub rule B-1", got)
}
