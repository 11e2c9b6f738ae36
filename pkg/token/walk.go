package token

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(tok *Token, depth int) error

// Walk visits every token in stream order, descending into children
// before moving to the next sibling. depth is 0 for top-level tokens.
func Walk(tokens []*Token, walkFunc WalkFunc) error {
	return walk(tokens, 0, walkFunc)
}

func walk(tokens []*Token, depth int, walkFunc WalkFunc) error {
	for _, tok := range tokens {
		if err := walkFunc(tok, depth); err != nil {
			return err
		}
		if len(tok.Children) > 0 {
			if err := walk(tok.Children, depth+1, walkFunc); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindAll returns all tokens, nested ones included, matching the predicate.
func FindAll(tokens []*Token, predicate func(tok *Token) bool) []*Token {
	var result []*Token

	//nolint:errcheck,revive // the callback never returns an error
	Walk(tokens, func(tok *Token, _ int) error {
		if predicate(tok) {
			result = append(result, tok)
		}
		return nil
	})

	return result
}

// FindByKind returns all tokens of the given kind.
func FindByKind(tokens []*Token, kind Kind) []*Token {
	return FindAll(tokens, func(tok *Token) bool {
		return tok.Kind == kind
	})
}

// Count returns the number of tokens of the given kind.
func Count(tokens []*Token, kind Kind) int {
	return len(FindByKind(tokens, kind))
}
