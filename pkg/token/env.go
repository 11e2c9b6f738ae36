package token

// Reference is a resolved link reference definition.
type Reference struct {
	Href  string
	Title string
}

// References resolves normalized reference labels.
type References interface {
	Lookup(key string) (Reference, bool)
}

// ReferenceMap is a References backed by a map keyed by normalized label.
type ReferenceMap map[string]Reference

// Lookup implements References.
func (m ReferenceMap) Lookup(key string) (Reference, bool) {
	ref, ok := m[key]
	return ref, ok
}

// Env is the environment of a single render call. It is created per call and
// never shared between calls.
type Env struct {
	// References holds link reference definitions collected during block parsing.
	References References

	// Language is the BCP 47 tag used for translated output.
	Language string

	// Meta holds document metadata such as front matter fields.
	Meta map[string]any
}

// NewEnv returns an empty environment for the given language.
func NewEnv(language string) *Env {
	return &Env{
		Language: language,
		Meta:     make(map[string]any),
	}
}

// Lookup resolves a normalized reference key, tolerating a nil env or table.
func (e *Env) Lookup(key string) (Reference, bool) {
	if e == nil || e.References == nil {
		return Reference{}, false
	}
	return e.References.Lookup(key)
}

// HasReferences reports whether a reference table is available.
func (e *Env) HasReferences() bool {
	return e != nil && e.References != nil
}
