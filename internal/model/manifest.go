// Package model loads declarative descriptions of an already-compiled
// declaration set into a live session. Manifests are TOML; they carry
// resolved classes, namespaces, members, templates and using declarations,
// not source text.
package model

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Manifest mirrors the on-disk TOML schema.
type Manifest struct {
	Schema     int         `toml:"schema"`
	Namespaces []Namespace `toml:"namespace"`
	Classes    []Class     `toml:"class"`
	Functions  []Function  `toml:"function"`
	Templates  []Template  `toml:"template"`
}

// Namespace declares (or re-declares) a namespace.
type Namespace struct {
	Name     string `toml:"name"`
	Scope    string `toml:"scope"` // qualified enclosing namespace, "" for the TU
	Inline   bool   `toml:"inline"`
	Internal bool   `toml:"internal"` // compiler-synthesized helper namespace
	Lazy     bool   `toml:"lazy"`     // body materializes on first adoption
}

// Class declares a class with its members.
type Class struct {
	Name      string     `toml:"name"`
	Scope     string     `toml:"scope"`
	Bases     []string   `toml:"bases"`
	FromCache bool       `toml:"from_cache"`
	Lazy      bool       `toml:"lazy"`
	Methods   []Function `toml:"method"`
	Usings    []Using    `toml:"using"`
}

// Function declares one function-like member (or free function). The kind
// is derived from the name: the class name declares a constructor, a
// leading '~' a destructor, and Conversion marks conversion operators.
type Function struct {
	Name           string   `toml:"name"`
	Scope          string   `toml:"scope"` // free functions only
	Access         string   `toml:"access"`
	Return         string   `toml:"return"`
	DeducedReturn  string   `toml:"deduced_return"`
	Params         []string `toml:"params"`
	ParamNames     []string `toml:"names"`
	Defaults       int      `toml:"defaults"` // number of trailing defaulted params
	Conversion     bool     `toml:"conversion"`
	Virtual        bool     `toml:"virtual"`
	Pure           bool     `toml:"pure"`
	Const          bool     `toml:"const"`
	Static         bool     `toml:"static"`
	Constexpr      bool     `toml:"constexpr"`
	Explicit       bool     `toml:"explicit"`
	Deleted        bool     `toml:"deleted"`
	Inline         bool     `toml:"inline"`
	Implicit       bool     `toml:"implicit"`
	Doc            string   `toml:"doc"`
	Annotation     string   `toml:"annotation"`
}

// Using declares `using Base::name;` (or `using Base::Base;` when Ctor is
// set, exposing the base's constructors).
type Using struct {
	Base   string `toml:"base"`
	Name   string `toml:"name"`
	Ctor   bool   `toml:"ctor"`
	Access string `toml:"access"`
}

// Template declares a function template.
type Template struct {
	Name    string          `toml:"name"`
	Scope   string          `toml:"scope"` // qualified class or namespace
	Access  string          `toml:"access"`
	Return  string          `toml:"return"`
	Params  []string        `toml:"params"`
	Names   []string        `toml:"names"`
	Const   bool            `toml:"const"`
	Deleted bool            `toml:"deleted"`
	TParams []TemplateParam `toml:"tparam"`
}

// TemplateParam declares one template parameter.
type TemplateParam struct {
	Kind    string `toml:"kind"` // "type" (default), "nontype", "template"
	Name    string `toml:"name"`
	Default string `toml:"default"` // type spelling (or any value for nontype)
	Pack    bool   `toml:"pack"`
}

const supportedSchema = 1

// decode parses raw TOML and validates the schema version.
func decode(data string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(data, &m); err != nil {
		return nil, fmt.Errorf("model: failed to parse manifest: %w", err)
	}
	if m.Schema != supportedSchema {
		return nil, fmt.Errorf("model: unsupported manifest schema %d", m.Schema)
	}
	return &m, nil
}

// decodeFile parses a manifest from disk.
func decodeFile(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse manifest: %w", path, err)
	}
	if m.Schema != supportedSchema {
		return nil, fmt.Errorf("%s: unsupported manifest schema %d", path, m.Schema)
	}
	return &m, nil
}
