package loader

import (
	"fmt"
	"strings"
)

// HTTPVerb is an operation key of a Swagger 2.0 path item.
type HTTPVerb string

// Operation keys recognized in a path item.
const (
	Delete  HTTPVerb = "delete"
	Get     HTTPVerb = "get"
	Head    HTTPVerb = "head"
	Options HTTPVerb = "options"
	Patch   HTTPVerb = "patch"
	Post    HTTPVerb = "post"
	Put     HTTPVerb = "put"
)

// HTTPVerbs lists the operation keys in their canonical order.
var HTTPVerbs = []HTTPVerb{Delete, Get, Head, Options, Patch, Post, Put}

// ParseHTTPVerb parses s case-insensitively.
func ParseHTTPVerb(s string) (HTTPVerb, error) {
	v := HTTPVerb(strings.ToLower(s))
	for _, known := range HTTPVerbs {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("loader: unknown HTTP verb %q", s)
}

// Endpoint identifies an operation by its verb and path template.
type Endpoint struct {
	Verb HTTPVerb
	Path string
}

// String renders the endpoint as "verb path", e.g. "get /pets/{id}".
func (e Endpoint) String() string {
	return string(e.Verb) + " " + e.Path
}

// Less orders endpoints by path, then verb.
func (e Endpoint) Less(other Endpoint) bool {
	if e.Path != other.Path {
		return e.Path < other.Path
	}
	return e.Verb < other.Verb
}
