package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oascompat/classifier"
	"github.com/erraggy/oascompat/differ"
	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/tree"
)

// Codes of the built-in rules.
const (
	CodeDeletedEndpoint                     = "MIS-E001"
	CodeChangedType                         = "MIS-E002"
	CodeAddedRequiredPropertyInRequest      = "REQ-E001"
	CodeRemovedEnumValueFromRequest         = "REQ-E002"
	CodeRemovedPropertiesFromClosedRequest  = "REQ-E003"
	CodeChangedAdditionalPropertiesToFalse  = "REQ-E004"
	CodeRemovedXNullableFromRequest         = "REQ-E005"
	CodeAddedPropertiesInClosedResponse     = "RES-E001"
	CodeRemovedRequiredPropertyFromResponse = "RES-E002"
	CodeAddedEnumValueInResponse            = "RES-E003"
	CodeAddedXNullableInResponse            = "RES-E004"
)

const closedObjectPreamble = "If the object is defined with additionalProperties set to False then the object will " +
	"not allow presence of properties not defined on the properties section of the object definition. "

func documentation(code string) string {
	return DocumentationBaseURL + code + ".html"
}

// Builtin returns a fresh list of the built-in rules sorted by code.
func Builtin() []Rule {
	return []Rule{
		&rule{
			info: Info{
				Code:      CodeDeletedEndpoint,
				ShortName: "Delete Endpoint",
				Description: "An endpoint has been removed. This change is not backward compatible as holders of " +
					"stale swagger specs (like old mobile Apps) could continue to call the removed endpoint and this " +
					"will cause an HTTP error status code (usually an HTTP/400 or HTTP/404)",
				Level:             LevelError,
				Type:              Miscellaneous,
				DocumentationLink: documentation(CodeDeletedEndpoint),
			},
			validate: deletedEndpoint,
		},
		&rule{
			info: Info{
				Code:      CodeChangedType,
				ShortName: "Changed type",
				Description: "Changing the type of a field is not backward compatible as a client using \"old\" " +
					"Swagger specs will send the field with a different type leading the service to fail to validate " +
					"the request. On the other end, if the object containing the updated field is used in the " +
					"response, it will lead to unexpected client errors when parsing the response and/or using the " +
					"updated property.",
				Level:             LevelError,
				Type:              Miscellaneous,
				DocumentationLink: documentation(CodeChangedType),
			},
			validate: changedType,
		},
		&rule{
			info: Info{
				Code:      CodeAddedRequiredPropertyInRequest,
				ShortName: "Added Required Property in Request contract",
				Description: "Adding a required property to an object used in requests leads client request to " +
					"fail if the property is not present.",
				Level:             LevelError,
				Type:              RequestContract,
				DocumentationLink: documentation(CodeAddedRequiredPropertyInRequest),
			},
			validate: addedRequiredPropertyInRequest,
		},
		&rule{
			info: Info{
				Code:      CodeRemovedEnumValueFromRequest,
				ShortName: "Removed Enum value from Request contract",
				Description: "Removing an enum value from a request parameter is backward incompatible as a " +
					"previously valid request will not be valid. This happens because a request containing the " +
					"removed enum value, valid according to the \"old\" Swagger spec, is not valid according to the " +
					"new specs.",
				Level:             LevelError,
				Type:              RequestContract,
				DocumentationLink: documentation(CodeRemovedEnumValueFromRequest),
			},
			validate: removedEnumValueFromRequest,
		},
		&rule{
			info: Info{
				Code: CodeRemovedPropertiesFromClosedRequest,
				ShortName: "Removing properties from an object with additionalProperties set to False used as " +
					"request parameter",
				Description: closedObjectPreamble + "Removing a definition of an existing property makes objects " +
					"sent from a client, that is using \"old\" Swagger specs, to the server be considered invalid " +
					"by the backend.",
				Level:             LevelError,
				Type:              RequestContract,
				DocumentationLink: documentation(CodeRemovedPropertiesFromClosedRequest),
			},
			validate: removedPropertiesFromClosedRequest,
		},
		&rule{
			info: Info{
				Code:      CodeChangedAdditionalPropertiesToFalse,
				ShortName: "Changing additionalProperties to False for a request parameter",
				Description: closedObjectPreamble + "Changing additionalProperties from True to False makes objects " +
					"sent from a client, that contain additional properties and were permitted by the \"old\" " +
					"Swagger specs, to the server be considered invalid by the backend.",
				Level:             LevelError,
				Type:              RequestContract,
				DocumentationLink: documentation(CodeChangedAdditionalPropertiesToFalse),
			},
			validate: changedAdditionalPropertiesToFalse,
		},
		&rule{
			info: Info{
				Code:      CodeRemovedXNullableFromRequest,
				ShortName: "Removed x-nullable from request",
				Description: "Removing x-nullable from a field used in requests is backward incompatible as clients, " +
					"using the \"old\" version of the Swagger specs, may send null for the field and the service " +
					"will reject the request as invalid.",
				Level: LevelError,
				Type:  RequestContract,
			},
			validate: removedXNullableFromRequest,
		},
		&rule{
			info: Info{
				Code:      CodeAddedPropertiesInClosedResponse,
				ShortName: "Added properties in an object with additionalProperties set to False used in response",
				Description: closedObjectPreamble + "Adding a definition of a new property makes object sent from " +
					"the server to the client be considered invalid by a client that is using \"old\" Swagger specs.",
				Level:             LevelError,
				Type:              ResponseContract,
				DocumentationLink: documentation(CodeAddedPropertiesInClosedResponse),
			},
			validate: addedPropertiesInClosedResponse,
		},
		&rule{
			info: Info{
				Code:      CodeRemovedRequiredPropertyFromResponse,
				ShortName: "Removed Required Property from Response contract",
				Description: "Removing a required property from an object leads to false expectation on the client " +
					"receiving the object. If the client is using \"old\" service's Swagger spec it will expect the " +
					"property to be present and so it could throw errors. It could be valid to assume that the " +
					"client won't perform response validation and this to unexpected errors while parsing the " +
					"response and/or using the missing property.",
				Level:             LevelError,
				Type:              ResponseContract,
				DocumentationLink: documentation(CodeRemovedRequiredPropertyFromResponse),
			},
			validate: removedRequiredPropertyFromResponse,
		},
		&rule{
			info: Info{
				Code:      CodeAddedEnumValueInResponse,
				ShortName: "Added Enum value in Response contract",
				Description: "Adding an enum value to a response parameter is backward incompatible as clients, " +
					"using the \"old\" version of the Swagger specs, will not be able to properly validate the " +
					"response.",
				Level:             LevelError,
				Type:              ResponseContract,
				DocumentationLink: documentation(CodeAddedEnumValueInResponse),
			},
			validate: addedEnumValueInResponse,
		},
		&rule{
			info: Info{
				Code:      CodeAddedXNullableInResponse,
				ShortName: "Added x-nullable in response",
				Description: "Marking a field used in responses as x-nullable is backward incompatible as clients, " +
					"using the \"old\" version of the Swagger specs, do not expect null for the field and will fail " +
					"to validate or to use the response.",
				Level: LevelError,
				Type:  ResponseContract,
			},
			validate: addedXNullableInResponse,
		},
	}
}

type validateFunc func(ctx context.Context, in Input, info Info) ([]ValidationMessage, error)

type rule struct {
	info     Info
	validate validateFunc
}

func (r *rule) Info() Info { return r.info }

func (r *rule) Validate(ctx context.Context, in Input) ([]ValidationMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.validate(ctx, in, r.info)
}

func deletedEndpoint(_ context.Context, in Input, info Info) ([]ValidationMessage, error) {
	var out []ValidationMessage
	for _, e := range loader.RemovedEndpoints(in.Old, in.New) {
		out = append(out, info.Message(e.String()))
	}
	return out, nil
}

func changedType(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	request, err := requestParameters(in)
	if err != nil {
		return nil, err
	}
	classify := func(in Input) (tree.PathSet, error) {
		response, err := responses(in)
		if err != nil {
			return nil, err
		}
		return request.Union(response), nil
	}
	return report(ctx, in, info, classify, differ.NewChangedTypes(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(differ.ChangedTypesDiff) bool { return true }))
}

func addedRequiredPropertyInRequest(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, requestParameters, differ.NewRequiredProperties(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(d differ.RequiredPropertiesDiff) bool { return len(d.Mapping.New) > 0 }))
}

func removedRequiredPropertyFromResponse(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, responses, differ.NewRequiredProperties(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(d differ.RequiredPropertiesDiff) bool { return len(d.Mapping.Old) > 0 }))
}

func removedEnumValueFromRequest(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, requestParameters, differ.NewEnumValues(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(d differ.EnumValuesDiff) bool { return len(d.Mapping.Old) > 0 }))
}

func addedEnumValueInResponse(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, responses, differ.NewEnumValues(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(d differ.EnumValuesDiff) bool { return len(d.Mapping.New) > 0 }))
}

func removedPropertiesFromClosedRequest(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, requestParameters, differ.NewAdditionalProperties(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(d differ.AdditionalPropertiesDiff) bool {
			return d.Type == differ.DiffTypeProperties && d.Properties != nil && len(d.Properties.Old) > 0
		}))
}

func changedAdditionalPropertiesToFalse(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, requestParameters, differ.NewAdditionalProperties(in.Old, in.New, in.walkerOptions()...).Walk,
		func(d differ.AdditionalPropertiesDiff) (string, bool) {
			if d.Type != differ.DiffTypeValue || d.AdditionalProperties == nil || d.AdditionalProperties.New.Allowed {
				return "", false
			}
			return endpointReference(d.Path) + ": schema's additionalProperties changed to False", true
		})
}

func addedPropertiesInClosedResponse(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, responses, differ.NewAdditionalProperties(in.Old, in.New, in.walkerOptions()...).Walk,
		func(d differ.AdditionalPropertiesDiff) (string, bool) {
			if d.Type != differ.DiffTypeProperties || d.Properties == nil || len(d.Properties.New) == 0 {
				return "", false
			}
			return fmt.Sprintf("%s: %s", endpointReference(d.Path), strings.Join(d.Properties.New, ", ")), true
		})
}

func removedXNullableFromRequest(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, requestParameters, differ.NewChangedXNullable(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(d differ.ChangedXNullableDiff) bool { return d.Mapping.Old && !d.Mapping.New }))
}

func addedXNullableInResponse(ctx context.Context, in Input, info Info) ([]ValidationMessage, error) {
	return report(ctx, in, info, responses, differ.NewChangedXNullable(in.Old, in.New, in.walkerOptions()...).Walk,
		atPath(func(d differ.ChangedXNullableDiff) bool { return d.Mapping.New }))
}

// report walks a differ and turns the facts located inside the classified
// scope into messages. reference returns false for facts the rule ignores.
func report[T differ.Fact](
	ctx context.Context,
	in Input,
	info Info,
	classify classifyFunc,
	walk func() ([]T, error),
	reference func(T) (string, bool),
) ([]ValidationMessage, error) {
	scope, err := classify(in)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	facts, err := walk()
	if err != nil {
		return nil, err
	}
	var out []ValidationMessage
	for _, fact := range facts {
		if !scope.ContainsPrefixOf(fact.At()) {
			continue
		}
		if ref, ok := reference(fact); ok {
			out = append(out, info.Message(ref))
		}
	}
	return out, nil
}

// atPath references a kept fact by its path.
func atPath[T differ.Fact](keep func(T) bool) func(T) (string, bool) {
	return func(fact T) (string, bool) {
		if !keep(fact) {
			return "", false
		}
		return fact.At().String(), true
	}
}

type classifyFunc func(Input) (tree.PathSet, error)

func requestParameters(in Input) (tree.PathSet, error) {
	return classifier.NewRequestParameters(in.Old, in.New, in.walkerOptions()...).Walk()
}

func responses(in Input) (tree.PathSet, error) {
	return classifier.NewResponses(in.Old, in.New, in.walkerOptions()...).Walk()
}

// endpointReference renders the operation a path belongs to as "verb path".
// Paths of path-level parameters render "parameters" in place of a verb.
func endpointReference(p tree.Path) string {
	if len(p) < 3 {
		return p.String()
	}
	return p[2].String() + " " + p[1].String()
}
