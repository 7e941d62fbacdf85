package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "all fields",
			err: &ParseError{
				Path:    "/path/to/file.yaml",
				Line:    42,
				Column:  10,
				Message: "invalid syntax",
				Cause:   errors.New("underlying error"),
			},
			want: "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error",
		},
		{"minimal", &ParseError{}, "parse error"},
		{"path only", &ParseError{Path: "api.yaml"}, "parse error in api.yaml"},
		{"line only", &ParseError{Line: 10}, "parse error at line 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	t.Run("unwrap and is", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrReference)
		assert.Nil(t, (&ParseError{}).Unwrap())
	})

	t.Run("as through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("loader: %w", &ParseError{Path: "x.yaml"})
		var pe *ParseError
		require.ErrorAs(t, wrapped, &pe)
		assert.Equal(t, "x.yaml", pe.Path)
	})
}

func TestReferenceError(t *testing.T) {
	tests := []struct {
		name          string
		err           *ReferenceError
		want          string
		circular      bool
		pathTraversal bool
	}{
		{
			name: "plain",
			err:  &ReferenceError{Ref: "#/definitions/Pet", Message: "not found"},
			want: "reference error: #/definitions/Pet: not found",
		},
		{
			name:     "circular",
			err:      &ReferenceError{Ref: "#/definitions/A", IsCircular: true},
			want:     "circular reference: #/definitions/A",
			circular: true,
		},
		{
			name:          "path traversal",
			err:           &ReferenceError{Ref: "../secret.yaml", IsPathTraversal: true},
			want:          "path traversal detected: ../secret.yaml",
			pathTraversal: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrReference)
			assert.Equal(t, tt.circular, errors.Is(tt.err, ErrCircularReference))
			assert.Equal(t, tt.pathTraversal, errors.Is(tt.err, ErrPathTraversal))
			assert.NotErrorIs(t, tt.err, ErrParse)
		})
	}

	t.Run("cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := &ReferenceError{Ref: "other.yaml", Cause: cause}
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "reference error: other.yaml: boom", err.Error())
	})
}

func TestVersionError(t *testing.T) {
	err := &VersionError{Path: "api.yaml", Version: "3.0.0"}
	assert.Equal(t, `unsupported version "3.0.0" in api.yaml (only swagger 2.0 is supported)`, err.Error())
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	missing := &VersionError{}
	assert.Equal(t, "unsupported version: missing swagger field (only swagger 2.0 is supported)", missing.Error())
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "file_size", Limit: 10, Actual: 20, Message: "too big"}
	assert.Equal(t, "resource limit exceeded: file_size (limit: 10, actual: 20): too big", err.Error())
	assert.ErrorIs(t, err, ErrResourceLimit)
	assert.Equal(t, "resource limit exceeded", (&ResourceLimitError{}).Error())
}

func TestRuleError(t *testing.T) {
	cause := errors.New("walker failed")
	err := &RuleError{Code: "REQ-E001", Cause: cause}
	assert.Equal(t, "rule error in REQ-E001: walker failed", err.Error())
	assert.ErrorIs(t, err, ErrRule)
	assert.ErrorIs(t, err, cause)
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{"minimal", &ConfigError{}, "configuration error"},
		{
			name: "all fields",
			err:  &ConfigError{Option: "rules", Value: "XYZ", Message: "unknown rule", Cause: errors.New("x")},
			want: "configuration error for rules (value: XYZ): unknown rule: x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrConfig)
		})
	}
}
