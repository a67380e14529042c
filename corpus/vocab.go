package corpus

import "sort"

// Vocabulary holds the distinct foreign and english tokens of a corpus.
// It is built once per training run and not modified afterward.
type Vocabulary struct {
	Foreign map[string]struct{}
	English map[string]struct{}
}

// BuildVocabulary collects the distinct tokens on each side in one pass.
func BuildVocabulary(c Corpus) *Vocabulary {
	v := &Vocabulary{
		Foreign: make(map[string]struct{}),
		English: make(map[string]struct{}),
	}
	for _, p := range c {
		for _, f := range p.Foreign {
			v.Foreign[f] = struct{}{}
		}
		for _, e := range p.English {
			v.English[e] = struct{}{}
		}
	}
	return v
}

// ForeignSize returns the number of distinct foreign tokens.
func (v *Vocabulary) ForeignSize() int {
	return len(v.Foreign)
}

// EnglishSize returns the number of distinct english tokens.
func (v *Vocabulary) EnglishSize() int {
	return len(v.English)
}

// EnglishWords returns the english tokens in sorted order.
func (v *Vocabulary) EnglishWords() []string {
	return sortedKeys(v.English)
}

// ForeignWords returns the foreign tokens in sorted order.
func (v *Vocabulary) ForeignWords() []string {
	return sortedKeys(v.Foreign)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
