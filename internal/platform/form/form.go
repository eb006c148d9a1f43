// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package form decodes flat, string-keyed form payloads into nested trees and
provides the mirrored error-tree structure used by schema validation.

A browser form posts flat keys like:

	person.email_address = tux@example.org
	registration.type    = Professional
	registration.miniconf = sysadmin   (repeated for multi-selects)

Decode groups these by their dotted prefixes into a [Tree]. Validation walks
the tree and accumulates failures into an [ErrorTree] with the exact same
shape, so a consumer can re-render the original form with inline messages.

# Architecture

This package is pure data plumbing: it never judges values, only carries
them. All judgement lives in the schema layer built on top of it.
*/
package form

import (
	"net/url"
	"strings"
)

// # Input Tree

// Tree is a nested view over a flat form payload. Leaf fields keep their
// repeated raw values; groups hold sub-trees keyed by path segment.
type Tree struct {
	fields map[string][]string
	groups map[string]*Tree
}

// NewTree returns an empty tree. Useful for building inputs in tests.
func NewTree() *Tree {
	return &Tree{
		fields: make(map[string][]string),
		groups: make(map[string]*Tree),
	}
}

// Decode groups flat dotted (or bracketed) keys into a nested [Tree].
//
// Bracket syntax ("person[email_address]") is normalized to dotted form
// before splitting, so both encodings decode identically.
func Decode(values url.Values) *Tree {
	tree := NewTree()
	for rawKey, rawValues := range values {
		segments := splitPath(rawKey)
		if len(segments) == 0 {
			continue
		}
		node := tree
		for _, group := range segments[:len(segments)-1] {
			node = node.ensureGroup(group)
		}
		field := segments[len(segments)-1]
		node.fields[field] = append(node.fields[field], rawValues...)
	}
	return tree
}

// Set assigns a single field value on the tree node. It replaces any
// previously set values for that field.
func (t *Tree) Set(field, value string) *Tree {
	t.fields[field] = []string{value}
	return t
}

// Add appends a value to a repeated (multi-select) field.
func (t *Tree) Add(field, value string) *Tree {
	t.fields[field] = append(t.fields[field], value)
	return t
}

// Get returns the first raw value for field, or "" if the field is absent.
func (t *Tree) Get(field string) string {
	if values := t.fields[field]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Values returns all raw values for a repeated field. Nil if absent.
func (t *Tree) Values(field string) []string {
	return t.fields[field]
}

// Has reports whether the field was present in the payload at all,
// distinguishing "absent" from "submitted empty".
func (t *Tree) Has(field string) bool {
	_, ok := t.fields[field]
	return ok
}

// Group returns the named sub-tree. It never returns nil: a missing group
// yields an empty tree, so schemas validate absent groups as all-missing
// rather than panicking.
func (t *Tree) Group(name string) *Tree {
	if group, ok := t.groups[name]; ok {
		return group
	}
	return NewTree()
}

// HasGroup reports whether the named sub-tree was present in the payload.
func (t *Tree) HasGroup(name string) bool {
	_, ok := t.groups[name]
	return ok
}

// EnsureGroup returns the named sub-tree, creating it if needed. Used by
// tests to build nested inputs without going through url.Values.
func (t *Tree) EnsureGroup(name string) *Tree {
	return t.ensureGroup(name)
}

func (t *Tree) ensureGroup(name string) *Tree {
	if group, ok := t.groups[name]; ok {
		return group
	}
	group := NewTree()
	t.groups[name] = group
	return group
}

// splitPath normalizes "a[b][c]" to "a.b.c" and splits on dots, dropping
// empty segments produced by stray separators.
func splitPath(key string) []string {
	normalized := strings.NewReplacer("[", ".", "]", "").Replace(key)
	parts := strings.Split(normalized, ".")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// # Error Tree

// Code is a machine-readable validation failure identifier.
//
// The structural codes live here; domain packages declare their own
// cross-entity codes as [Code] constants (the type is deliberately open).
type Code string

const (
	// CodeMissingField marks a required field that was empty or absent.
	CodeMissingField Code = "MISSING_FIELD"

	// CodeInvalidFormat marks a field that failed type conversion (int, bool).
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// CodeInvalidEmail marks a syntactically invalid email address.
	CodeInvalidEmail Code = "INVALID_EMAIL"

	// CodeUnresolvableDomain marks an email whose domain has no DNS records.
	CodeUnresolvableDomain Code = "UNRESOLVABLE_DOMAIN"
)

// Issue is one validation failure: a machine code plus a human message.
type Issue struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ErrorTree mirrors the shape of the input [Tree]: per-field issues at each
// node, named sub-trees for groups, and node-level issues for aggregate
// (non-field-specific) failures attached at the owning sub-schema.
type ErrorTree struct {
	Fields map[string][]Issue    `json:"fields,omitempty"`
	Groups map[string]*ErrorTree `json:"groups,omitempty"`
	Node   []Issue               `json:"node,omitempty"`
}

// NewErrorTree returns an empty error tree.
func NewErrorTree() *ErrorTree {
	return &ErrorTree{
		Fields: make(map[string][]Issue),
		Groups: make(map[string]*ErrorTree),
	}
}

// AddField records a failure against a named field at this node.
func (e *ErrorTree) AddField(field string, code Code, message string) {
	e.Fields[field] = append(e.Fields[field], Issue{Code: code, Message: message})
}

// AddNode records an aggregate failure at this schema node.
func (e *ErrorTree) AddNode(code Code, message string) {
	e.Node = append(e.Node, Issue{Code: code, Message: message})
}

// Group returns the error sub-tree for a named group, creating it on first
// use so callers can write into it unconditionally.
func (e *ErrorTree) Group(name string) *ErrorTree {
	if group, ok := e.Groups[name]; ok {
		return group
	}
	group := NewErrorTree()
	e.Groups[name] = group
	return group
}

// Empty reports whether the tree holds no issues anywhere. An error tree
// that is Empty means validation succeeded and the result may be used.
func (e *ErrorTree) Empty() bool {
	if e == nil {
		return true
	}
	if len(e.Fields) > 0 || len(e.Node) > 0 {
		return false
	}
	for _, group := range e.Groups {
		if !group.Empty() {
			return false
		}
	}
	return true
}

// HasCode reports whether any issue with the given code exists anywhere in
// the tree. Used by the delivery layer to map conflict-class failures to
// their HTTP status.
func (e *ErrorTree) HasCode(code Code) bool {
	if e == nil {
		return false
	}
	for _, issues := range e.Fields {
		for _, issue := range issues {
			if issue.Code == code {
				return true
			}
		}
	}
	for _, issue := range e.Node {
		if issue.Code == code {
			return true
		}
	}
	for _, group := range e.Groups {
		if group.HasCode(code) {
			return true
		}
	}
	return false
}
