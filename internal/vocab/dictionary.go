package vocab

// Dictionary holds the practice words for one language pair. The word list
// preserves the order entries appeared in the data files; a prompt word seen
// more than once keeps its first position and accumulates any new answers.
type Dictionary struct {
	Languages PairKey

	words   []string
	answers map[string][]string
}

// NewDictionary creates an empty dictionary for a language pair
func NewDictionary(languages PairKey) *Dictionary {
	return &Dictionary{
		Languages: languages,
		answers:   map[string][]string{},
	}
}

// Add records an entry's answers under its prompt word
func (d *Dictionary) Add(entry Entry) {
	existing, seen := d.answers[entry.Prompt]
	if !seen {
		d.words = append(d.words, entry.Prompt)
		d.answers[entry.Prompt] = append([]string(nil), entry.Answers...)
		return
	}

	for _, answer := range entry.Answers {
		if !contains(existing, answer) {
			existing = append(existing, answer)
		}
	}
	d.answers[entry.Prompt] = existing
}

// Words returns the prompt words in file order
func (d *Dictionary) Words() []string {
	return d.words
}

// Answers returns the accepted answers for a prompt word
func (d *Dictionary) Answers(word string) []string {
	return d.answers[word]
}

// Len returns the number of distinct prompt words
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Build groups category entries into one dictionary per language pair.
// Dictionaries are returned in order of first appearance. Categories of
// unknown type contribute nothing.
func Build(categories []Category) []*Dictionary {
	byPair := map[PairKey]*Dictionary{}
	var dicts []*Dictionary

	for _, cat := range categories {
		if cat.Type != TypeVocabulary {
			continue
		}
		for _, entry := range cat.Entries {
			dict, ok := byPair[entry.Languages]
			if !ok {
				dict = NewDictionary(entry.Languages)
				byPair[entry.Languages] = dict
				dicts = append(dicts, dict)
			}
			dict.Add(entry)
		}
	}

	return dicts
}

// AllCategories flattens the categories of every class, preserving order
func AllCategories(classes []*Class) []Category {
	var categories []Category
	for _, class := range classes {
		categories = append(categories, class.Categories...)
	}
	return categories
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
