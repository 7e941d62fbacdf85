package loader

import (
	"slices"
	"sync"

	"github.com/erraggy/oascompat/tree"
)

// Config carries load-time settings that affect how rules read a Spec.
type Config struct {
	// DefaultTypeToObject treats schemas without a type as objects.
	DefaultTypeToObject bool
}

// Spec is a loaded Swagger 2.0 document with all references resolved.
// Nodes reached through the same $ref target share their IDs.
type Spec struct {
	// Document is the flattened document.
	Document *tree.Document
	// SourcePath is the file path, URL or source name the document came from.
	SourcePath string
	// Version is the declared swagger version.
	Version string
	// Config holds the load-time settings.
	Config Config

	endpointsOnce sync.Once
	endpoints     []Endpoint
}

// Root returns the document root.
func (s *Spec) Root() tree.Node {
	return s.Document.Root()
}

// Endpoints returns every operation declared under paths, sorted by path then
// verb. The result is computed once and shared; callers must not modify it.
func (s *Spec) Endpoints() []Endpoint {
	s.endpointsOnce.Do(func() {
		paths := s.Root().Get("paths")
		for _, p := range paths.Keys() {
			item := paths.Get(p)
			for _, verb := range HTTPVerbs {
				if item.Get(string(verb)).IsMap() {
					s.endpoints = append(s.endpoints, Endpoint{Verb: verb, Path: p})
				}
			}
		}
		slices.SortFunc(s.endpoints, compareEndpoints)
	})
	return s.endpoints
}

// HasEndpoint reports whether e is declared.
func (s *Spec) HasEndpoint(e Endpoint) bool {
	_, found := slices.BinarySearchFunc(s.Endpoints(), e, compareEndpoints)
	return found
}

// Operation returns the operation object of e, absent when not declared.
func (s *Spec) Operation(e Endpoint) tree.Node {
	return s.Root().Get("paths").Get(e.Path).Get(string(e.Verb))
}

// OperationMapping pairs the operations both documents declare for Endpoint.
type OperationMapping struct {
	Endpoint Endpoint
	Old      tree.Node
	New      tree.Node
}

// OperationMappings returns the endpoints declared by both oldSpec and newSpec,
// sorted by path then verb.
func OperationMappings(oldSpec, newSpec *Spec) []OperationMapping {
	var out []OperationMapping
	for _, e := range oldSpec.Endpoints() {
		if newSpec.HasEndpoint(e) {
			out = append(out, OperationMapping{Endpoint: e, Old: oldSpec.Operation(e), New: newSpec.Operation(e)})
		}
	}
	return out
}

// RemovedEndpoints returns the endpoints of oldSpec that newSpec no longer declares.
func RemovedEndpoints(oldSpec, newSpec *Spec) []Endpoint {
	var out []Endpoint
	for _, e := range oldSpec.Endpoints() {
		if !newSpec.HasEndpoint(e) {
			out = append(out, e)
		}
	}
	return out
}

func compareEndpoints(a, b Endpoint) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
