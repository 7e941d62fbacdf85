package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/erraggy/oascompat/internal/severity"
	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/walker"
)

// Level is the severity of a rule and of the messages it reports.
type Level = severity.Level

// Severity levels, re-exported so callers need not import internal/severity.
const (
	LevelInfo    = severity.Info
	LevelWarning = severity.Warning
	LevelError   = severity.Error
)

// RuleType groups rules by the part of the API contract they protect.
type RuleType int

const (
	// RequestContract rules protect requests sent by existing clients.
	RequestContract RuleType = iota
	// ResponseContract rules protect responses parsed by existing clients.
	ResponseContract
	// Miscellaneous rules cover everything else.
	Miscellaneous
)

// String returns the upper-case name of the type, such as "REQUEST_CONTRACT".
func (t RuleType) String() string {
	switch t {
	case RequestContract:
		return "REQUEST_CONTRACT"
	case ResponseContract:
		return "RESPONSE_CONTRACT"
	case Miscellaneous:
		return "MISCELLANEOUS"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the type by name.
func (t RuleType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DocumentationBaseURL is where the built-in rules are documented.
const DocumentationBaseURL = "https://swagger-spec-compatibility.readthedocs.io/en/latest/rules/"

// Info describes a rule.
type Info struct {
	// Code uniquely identifies the rule, e.g. "REQ-E001".
	Code string
	// ShortName is shown next to every message the rule reports.
	ShortName string
	// Description explains why the change is incompatible.
	Description string
	Level       Level
	Type        RuleType
	// DocumentationLink is optional.
	DocumentationLink string
}

// Message returns a ValidationMessage of this rule about reference.
func (i Info) Message(reference string) ValidationMessage {
	return ValidationMessage{Level: i.Level, Rule: i, Reference: reference}
}

func (i Info) validate() error {
	switch {
	case i.Code == "":
		return errors.New("missing code")
	case i.ShortName == "":
		return errors.New("missing short name")
	case i.Description == "":
		return errors.New("missing description")
	case i.Level < LevelInfo || i.Level > LevelError:
		return fmt.Errorf("invalid level %d", int(i.Level))
	case i.Type < RequestContract || i.Type > Miscellaneous:
		return fmt.Errorf("invalid rule type %d", int(i.Type))
	}
	return nil
}

// Input is what a rule inspects.
type Input struct {
	Old, New *loader.Spec
	// Logger receives warnings raised while walking. May be nil.
	Logger loader.Logger
}

func (in Input) walkerOptions() []walker.Option {
	return []walker.Option{walker.WithLogger(in.Logger)}
}

// Rule detects one kind of backward incompatible change.
type Rule interface {
	Info() Info
	// Validate returns one message per incompatible change, in document
	// order. It must not retain in.
	Validate(ctx context.Context, in Input) ([]ValidationMessage, error)
}

// ValidationMessage is one incompatible change reported by a rule.
type ValidationMessage struct {
	Level     Level
	Rule      Info
	Reference string
}

// String renders the message as
//
//	[CODE] Short name: reference (documentation: link)
//
// The documentation part is omitted when the rule has no link.
func (m ValidationMessage) String() string {
	s := fmt.Sprintf("[%s] %s: %s", m.Rule.Code, m.Rule.ShortName, m.Reference)
	if m.Rule.DocumentationLink != "" {
		s += fmt.Sprintf(" (documentation: %s)", m.Rule.DocumentationLink)
	}
	return s
}

// MessageJSON is the machine readable form of a ValidationMessage.
type MessageJSON struct {
	ErrorCode     string  `json:"error_code" yaml:"error_code"`
	Reference     string  `json:"reference" yaml:"reference"`
	ShortName     string  `json:"short_name" yaml:"short_name"`
	Documentation *string `json:"documentation" yaml:"documentation"`
}

// JSON returns the machine readable form of the message. Documentation is
// nil when the rule has no link.
func (m ValidationMessage) JSON() MessageJSON {
	out := MessageJSON{
		ErrorCode: m.Rule.Code,
		Reference: m.Reference,
		ShortName: m.Rule.ShortName,
	}
	if link := m.Rule.DocumentationLink; link != "" {
		out.Documentation = &link
	}
	return out
}

// MarshalJSON encodes the message as its JSON form.
func (m ValidationMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.JSON())
}
