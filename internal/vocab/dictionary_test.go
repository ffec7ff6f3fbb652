package vocab

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func entry(pair PairKey, prompt string, answers ...string) Entry {
	return Entry{Languages: pair, Prompt: prompt, Answers: answers}
}

func TestBuildPreservesOrder(t *testing.T) {
	pair := PairKey{Prompt: "english", Answer: "spanish"}
	categories := []Category{{
		Name: "Unit 1",
		Type: TypeVocabulary,
		Entries: []Entry{
			entry(pair, "the dog", "el perro"),
			entry(pair, "the cat", "el gato"),
			entry(pair, "the house", "la casa"),
		},
	}}

	dicts := Build(categories)
	if len(dicts) != 1 {
		t.Fatalf("Expected 1 dictionary, got %d", len(dicts))
	}

	expected := []string{"the dog", "the cat", "the house"}
	if diff := cmp.Diff(expected, dicts[0].Words()); diff != "" {
		t.Errorf("Words out of order (-want +got):\n%s", diff)
	}
	if dicts[0].Len() != 3 {
		t.Errorf("Expected length 3, got %d", dicts[0].Len())
	}
}

func TestBuildGroupsByLanguagePair(t *testing.T) {
	enEs := PairKey{Prompt: "english", Answer: "spanish"}
	enFr := PairKey{Prompt: "english", Answer: "french"}
	categories := []Category{
		{
			Name: "Spanish",
			Type: TypeVocabulary,
			Entries: []Entry{
				entry(enEs, "the dog", "el perro"),
			},
		},
		{
			Name: "French",
			Type: TypeVocabulary,
			Entries: []Entry{
				entry(enFr, "the dog", "le chien"),
			},
		},
	}

	dicts := Build(categories)
	if len(dicts) != 2 {
		t.Fatalf("Expected 2 dictionaries, got %d", len(dicts))
	}

	// First appearance order is preserved.
	if dicts[0].Languages != enEs || dicts[1].Languages != enFr {
		t.Errorf("Unexpected dictionary order: %v, %v", dicts[0].Languages, dicts[1].Languages)
	}
	if got := dicts[1].Answers("the dog"); len(got) != 1 || got[0] != "le chien" {
		t.Errorf("Unexpected answers for french dictionary: %v", got)
	}
}

func TestBuildMergesDuplicatePrompts(t *testing.T) {
	pair := PairKey{Prompt: "english", Answer: "spanish"}
	categories := []Category{{
		Name: "Unit 1",
		Type: TypeVocabulary,
		Entries: []Entry{
			entry(pair, "the bank", "el banco"),
			entry(pair, "the dog", "el perro"),
			entry(pair, "the bank", "la orilla", "el banco"),
		},
	}}

	dicts := Build(categories)

	expected := []string{"the bank", "the dog"}
	if diff := cmp.Diff(expected, dicts[0].Words()); diff != "" {
		t.Errorf("Duplicate prompt changed word order (-want +got):\n%s", diff)
	}

	answers := dicts[0].Answers("the bank")
	if diff := cmp.Diff([]string{"el banco", "la orilla"}, answers); diff != "" {
		t.Errorf("Answers not merged (-want +got):\n%s", diff)
	}
}

func TestBuildSkipsUnknownCategories(t *testing.T) {
	pair := PairKey{Prompt: "english", Answer: "spanish"}
	categories := []Category{
		{
			Name: "Grammar",
			Type: TypeUnknown,
			Entries: []Entry{
				entry(pair, "ignored", "ignorado"),
			},
		},
	}

	if dicts := Build(categories); len(dicts) != 0 {
		t.Errorf("Expected no dictionaries from unknown categories, got %d", len(dicts))
	}
}

func TestAllCategories(t *testing.T) {
	classes := []*Class{
		{Name: "A", Categories: []Category{{Name: "A1"}, {Name: "A2"}}},
		{Name: "B", Categories: []Category{{Name: "B1"}}},
	}

	categories := AllCategories(classes)
	if len(categories) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(categories))
	}
	if categories[0].Name != "A1" || categories[2].Name != "B1" {
		t.Errorf("Categories out of order: %v", []string{categories[0].Name, categories[1].Name, categories[2].Name})
	}
}
