package token

// Compact removes reference decoration that no back-reference uses.
//
// A traversal numbers every tracked instance in first-visit order because it
// cannot know in advance which ones will be revisited. Compact keeps numbers
// only for headers that some BackReference points at and renumbers them
// densely from 0 in the order they are first referenced.
func Compact(tokens []Token) []Token {
	remap := make(map[Reference]Reference)
	for _, t := range tokens {
		if t.Kind != BackReference {
			continue
		}
		if _, ok := remap[t.Ref]; !ok {
			remap[t.Ref] = Reference(len(remap))
		}
	}

	out := make([]Token, len(tokens))
	for i, t := range tokens {
		switch t.Kind {
		case BackReference:
			t.Ref = remap[t.Ref]
		case ComplexHeader:
			if n, ok := remap[t.Ref]; ok && t.Ref.Valid() {
				t.Ref = n
			} else {
				t.Ref = NoReference
			}
		}
		out[i] = t
	}
	return out
}

// HasBackReferences reports whether any token refers to an earlier instance.
func HasBackReferences(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind == BackReference {
			return true
		}
	}
	return false
}
