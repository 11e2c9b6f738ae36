package token

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// AttrIndex returns the index of the first attribute with the given name, or -1.
func (t *Token) AttrIndex(name string) int {
	for i, attr := range t.Attrs {
		if attr.Name == name {
			return i
		}
	}
	return -1
}

// AttrGet returns the value of the first attribute with the given name.
func (t *Token) AttrGet(name string) (string, bool) {
	idx := t.AttrIndex(name)
	if idx < 0 {
		return "", false
	}
	return t.Attrs[idx].Value, true
}

// AttrPush appends an attribute without checking for duplicates.
func (t *Token) AttrPush(name, value string) {
	t.Attrs = append(t.Attrs, Attr{Name: name, Value: value})
}

// AttrSet replaces the value of an existing attribute or appends a new one.
func (t *Token) AttrSet(name, value string) {
	if idx := t.AttrIndex(name); idx >= 0 {
		t.Attrs[idx].Value = value
		return
	}
	t.AttrPush(name, value)
}

// AttrJoin appends value to an existing attribute separated by a space,
// or creates the attribute. Used for class lists.
func (t *Token) AttrJoin(name, value string) {
	if idx := t.AttrIndex(name); idx >= 0 {
		t.Attrs[idx].Value += " " + value
		return
	}
	t.AttrPush(name, value)
}

// CopyAttrs returns a copy of the attributes whose names satisfy keep.
// A nil keep copies everything.
func (t *Token) CopyAttrs(keep func(name string) bool) []Attr {
	out := make([]Attr, 0, len(t.Attrs))
	for _, attr := range t.Attrs {
		if keep == nil || keep(attr.Name) {
			out = append(out, attr)
		}
	}
	return out
}
