package vocab

// CategoryType represents the type of a category in a class file
type CategoryType int

const (
	TypeUnknown CategoryType = iota
	TypeVocabulary
)

// String returns the category type as it appears in class files
func (t CategoryType) String() string {
	switch t {
	case TypeVocabulary:
		return "vocabulary"
	default:
		return "unknown"
	}
}

// ParseCategoryType maps a class file type string to a CategoryType
func ParseCategoryType(s string) CategoryType {
	switch s {
	case "vocabulary":
		return TypeVocabulary
	default:
		return TypeUnknown
	}
}

// PairKey identifies a direction of practice: the language the prompt is
// shown in and the language the answer is expected in.
type PairKey struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// String renders the pair the way selection menus display it
func (k PairKey) String() string {
	return k.Prompt + " -> " + k.Answer
}

// Entry is a single vocabulary item: one prompt word and the answers that
// are accepted for it. A word like "the bank" may map to several
// translations, so Answers always holds at least one element.
type Entry struct {
	Languages PairKey  `json:"languages"`
	Prompt    string   `json:"prompt"`
	Answers   []string `json:"answers"`
}

// Category is a named group of entries within a class
type Category struct {
	Name    string
	Type    CategoryType
	Entries []Entry
}

// Class is one data file's worth of categories
type Class struct {
	Name       string
	Categories []Category
}

// EntryCount returns the total number of entries across all categories
func (c *Class) EntryCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Entries)
	}
	return n
}
