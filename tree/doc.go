// Package tree holds the in-memory form of an API description used by the
// compatibility walkers.
//
// [Build] turns a decoded YAML/JSON value into an arena-backed [Document].
// While building, every $ref object is replaced by its target, and each
// target is stored exactly once. Two references to the same definition
// therefore yield the same [NodeID], and a self-referencing schema becomes
// a real cycle in the graph. Walkers rely on those stable IDs to detect
// cycles.
//
// A [Node] is a cheap handle into a Document. The zero Node is absent,
// meaning there is no node at that address. That is a different state from
// a present node holding null ([Node.IsNull]).
//
// [Path] addresses a node from the root with key and index segments.
// [PathSet] holds the paths emitted by the classifiers. Its
// [PathSet.ContainsPrefixOf] reports whether a path lies at or below any
// member.
package tree
