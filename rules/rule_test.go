package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/tree"
)

func TestValidationMessageString(t *testing.T) {
	info := Info{
		Code:              "REQ-E001",
		ShortName:         "Added Required Property in Request contract",
		Description:       "d",
		Level:             LevelError,
		DocumentationLink: documentation("REQ-E001"),
	}
	m := info.Message("#/paths//pets/post/parameters/0/schema")
	assert.Equal(t, LevelError, m.Level)
	assert.Equal(t,
		"[REQ-E001] Added Required Property in Request contract: #/paths//pets/post/parameters/0/schema "+
			"(documentation: https://swagger-spec-compatibility.readthedocs.io/en/latest/rules/REQ-E001.html)",
		m.String())

	info.DocumentationLink = ""
	assert.Equal(t, "[REQ-E001] Added Required Property in Request contract: ref", info.Message("ref").String())
}

func TestValidationMessageJSON(t *testing.T) {
	info := Info{Code: "MIS-E001", ShortName: "Delete Endpoint", Level: LevelError, DocumentationLink: "https://x/MIS-E001.html"}
	data, err := json.Marshal(info.Message("get /pets"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"error_code": "MIS-E001",
		"reference": "get /pets",
		"short_name": "Delete Endpoint",
		"documentation": "https://x/MIS-E001.html"
	}`, string(data))

	info.DocumentationLink = ""
	data, err = json.Marshal(info.Message("get /pets"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error_code": "MIS-E001", "reference": "get /pets", "short_name": "Delete Endpoint", "documentation": null}`, string(data))
}

func TestRuleTypeString(t *testing.T) {
	tests := []struct {
		typ  RuleType
		want string
	}{
		{RequestContract, "REQUEST_CONTRACT"},
		{ResponseContract, "RESPONSE_CONTRACT"},
		{Miscellaneous, "MISCELLANEOUS"},
		{RuleType(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
			text, err := tt.typ.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(text))
		})
	}
}

func TestInfoValidate(t *testing.T) {
	valid := Info{Code: "X-1", ShortName: "x", Description: "x", Level: LevelWarning, Type: Miscellaneous}
	require.NoError(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(*Info)
	}{
		{"no code", func(i *Info) { i.Code = "" }},
		{"no short name", func(i *Info) { i.ShortName = "" }},
		{"no description", func(i *Info) { i.Description = "" }},
		{"bad level", func(i *Info) { i.Level = Level(5) }},
		{"bad type", func(i *Info) { i.Type = RuleType(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := valid
			tt.mutate(&info)
			assert.Error(t, info.validate())
		})
	}
}

func TestBuiltinMetadata(t *testing.T) {
	rules := Builtin()
	require.Len(t, rules, 11)

	withoutLink := map[string]bool{CodeRemovedXNullableFromRequest: true, CodeAddedXNullableInResponse: true}
	for i, r := range rules {
		info := r.Info()
		require.NoError(t, info.validate(), info.Code)
		assert.Equal(t, LevelError, info.Level, info.Code)
		if i > 0 {
			assert.Less(t, rules[i-1].Info().Code, info.Code, "sorted by code")
		}
		if withoutLink[info.Code] {
			assert.Empty(t, info.DocumentationLink, info.Code)
		} else {
			assert.Equal(t, DocumentationBaseURL+info.Code+".html", info.DocumentationLink)
		}
		switch info.Code[:3] {
		case "REQ":
			assert.Equal(t, RequestContract, info.Type, info.Code)
		case "RES":
			assert.Equal(t, ResponseContract, info.Type, info.Code)
		case "MIS":
			assert.Equal(t, Miscellaneous, info.Type, info.Code)
		}
	}
}

func TestEndpointReference(t *testing.T) {
	assert.Equal(t, "get /pets", endpointReference(tree.NewPath("paths", "/pets", "get", "responses", "200")))
	assert.Equal(t, "parameters /pets", endpointReference(tree.NewPath("paths", "/pets", "parameters", 0, "schema")))
	assert.Equal(t, "#/paths", endpointReference(tree.NewPath("paths")))
}
