// Package registry discovers, parses and indexes script descriptors.
package registry

// Descriptor is the parsed metadata plus source body of one script unit.
// Descriptors are immutable once published; reloading a script publishes a
// replacement rather than mutating in place.
type Descriptor struct {
	Identifier  string
	Name        string
	Description string
	Icon        string
	Tags        []string
	Shortcut    string // normalized combo, empty when unbound
	API         int
	Path        string
	Source      string // raw entry source, opaque here; compiled by the sandbox
}

// Source is one script unit handed to the registry: a path-like identifier
// and the raw source bytes. Reading files is the caller's concern; the
// registry itself performs no I/O.
type Source struct {
	Path string
	Data []byte
}
