package term

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorize/memorize/internal/vocab"
)

// testClasses builds one class with a single vocabulary category. Every
// prompt accepts the same answer "si" so scripted sessions do not depend on
// the random word order.
func testClasses(prompts ...string) []*vocab.Class {
	pair := vocab.PairKey{Prompt: "english", Answer: "spanish"}
	cat := vocab.Category{Name: "Unit 1", Type: vocab.TypeVocabulary}
	for _, prompt := range prompts {
		cat.Entries = append(cat.Entries, vocab.Entry{
			Languages: pair,
			Prompt:    prompt,
			Answers:   []string{"si"},
		})
	}
	return []*vocab.Class{{Name: "Spanish 1", Categories: []vocab.Category{cat}}}
}

// script joins input lines for the runner
func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func newTestRunner(input string, out *bytes.Buffer, rounds int) *Runner {
	return NewRunner(strings.NewReader(input), out, Options{
		Rand:          rand.New(rand.NewSource(1)),
		DefaultRounds: rounds,
	})
}

func TestRunAllCorrect(t *testing.T) {
	var out bytes.Buffer
	input := script(
		"",   // select everything
		"",   // default rounds
		"si", // 3 correct answers
		"si",
		"si",
		"n", // no more rounds
	)
	runner := newTestRunner(input, &out, 3)

	err := runner.Run(testClasses("one", "two", "three"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Selecting everything...")
	assert.Contains(t, out.String(), "Selecting english -> spanish")
	assert.Contains(t, out.String(), "Total tests: 3")
	assert.Contains(t, out.String(), "Correct: 3/3")
	assert.Contains(t, out.String(), "There were no missed words")
}

func TestRunAllWrong(t *testing.T) {
	var out bytes.Buffer
	lines := []string{"", ""}
	for i := 0; i < 3*3; i++ {
		lines = append(lines, "no")
	}
	lines = append(lines, "n")
	runner := newTestRunner(script(lines...), &out, 3)

	err := runner.Run(testClasses("one", "two", "three"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Correct: 0/3")
	assert.Contains(t, out.String(), "Missed words:")
	for _, word := range []string{"one", "two", "three"} {
		assert.Contains(t, out.String(), "\t"+word)
	}
}

func TestRunCaseInsensitiveAnswers(t *testing.T) {
	var out bytes.Buffer
	input := script("", "", "  SI  ", "n")
	runner := newTestRunner(input, &out, 1)

	err := runner.Run(testClasses("one", "two"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Correct: 1/1")
}

func TestRunEOFQuitsGracefully(t *testing.T) {
	var out bytes.Buffer
	runner := newTestRunner("", &out, 3)

	err := runner.Run(testClasses("one"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Quitting...")
}

func TestRunEOFMidGame(t *testing.T) {
	var out bytes.Buffer
	// Input ends after the first correct answer; the summary still shows
	// what was played.
	input := script("", "", "si")
	runner := newTestRunner(input, &out, 3)

	err := runner.Run(testClasses("one", "two", "three"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Quitting...")
	// The second round had already been drawn when input ran out.
	assert.Contains(t, out.String(), "Correct: 1/2")
}

func TestRunQuitAtSelection(t *testing.T) {
	var out bytes.Buffer
	runner := newTestRunner(script("q"), &out, 3)

	err := runner.Run(testClasses("one"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Quitting...")
}

func TestRunQuitConfirmDuringRound(t *testing.T) {
	var out bytes.Buffer
	input := script(
		"", "",
		"",  // empty answer asks for confirmation
		"y", // confirm quit
	)
	runner := newTestRunner(input, &out, 3)

	err := runner.Run(testClasses("one", "two"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Do you want to quit? (y/n)")
	assert.Contains(t, out.String(), "Quitting...")
}

func TestRunQuitConfirmDeclined(t *testing.T) {
	var out bytes.Buffer
	input := script(
		"", "",
		"",   // empty answer asks for confirmation
		"n",  // keep playing
		"si", // then answer correctly
		"n",
	)
	runner := newTestRunner(input, &out, 1)

	err := runner.Run(testClasses("one", "two"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Correct: 1/1")
}

func TestRunLanguageSelection(t *testing.T) {
	classes := testClasses("one", "two")
	frCat := vocab.Category{
		Name: "French",
		Type: vocab.TypeVocabulary,
		Entries: []vocab.Entry{{
			Languages: vocab.PairKey{Prompt: "english", Answer: "french"},
			Prompt:    "one",
			Answers:   []string{"oui"},
		}},
	}
	classes[0].Categories = append(classes[0].Categories, frCat)

	var out bytes.Buffer
	input := script(
		"",    // select everything
		"2",   // pick english -> french
		"",    // default rounds
		"oui", // correct
		"n",
	)
	runner := newTestRunner(input, &out, 1)

	err := runner.Run(classes)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Select a language pair:")
	assert.Contains(t, out.String(), "english -> french")
	assert.Contains(t, out.String(), "Correct: 1/1")
}

func TestParseSelection(t *testing.T) {
	classes := []*vocab.Class{
		{Name: "A", Categories: []vocab.Category{{Name: "A1"}, {Name: "A2"}, {Name: "A3"}}},
		{Name: "B", Categories: []vocab.Category{{Name: "B1"}, {Name: "B2"}}},
	}

	tests := []struct {
		name     string
		input    string
		expected [][2]int
	}{
		{"single", "1.2", [][2]int{{0, 1}}},
		{"colon form", "1:2", [][2]int{{0, 1}}},
		{"range", "1.1-3", [][2]int{{0, 0}, {0, 1}, {0, 2}}},
		{"wildcard", "2.*", [][2]int{{1, 0}, {1, 1}}},
		{"mixed and sorted", "2.1 1.3", [][2]int{{0, 2}, {1, 0}}},
		{"duplicates collapse", "1.1 1.1", [][2]int{{0, 0}}},
		{"invalid tokens skipped", "bogus 1.2", [][2]int{{0, 1}}},
		{"out of range class skipped", "9.1 1.1", [][2]int{{0, 0}}},
		{"range clipped to class", "1.2-9", [][2]int{{0, 1}, {0, 2}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			runner := newTestRunner("", &out, 3)

			indices, err := runner.parseSelection(tc.input, classes)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, indices)
		})
	}
}

func TestParseSelectionNothingValid(t *testing.T) {
	classes := []*vocab.Class{{Name: "A", Categories: []vocab.Category{{Name: "A1"}}}}

	var out bytes.Buffer
	runner := newTestRunner("", &out, 3)

	_, err := runner.parseSelection("bogus", classes)
	assert.True(t, errors.Is(err, ErrQuit))
	assert.Contains(t, out.String(), "No selection could be made")
}

func TestAskRounds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"first choice", "1", 5},
		{"last choice", "4", 50},
		{"default on empty", "", 7},
		{"retry after invalid", "abc\n2", 10},
		{"retry after out of range", "9\n3", 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			runner := newTestRunner(tc.input+"\n", &out, 7)

			rounds, err := runner.askRounds()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rounds)
		})
	}
}

func TestPlayMore(t *testing.T) {
	var out bytes.Buffer
	input := script(
		"", "",
		"si", // round 1
		"y",  // play more
		"1",  // 5 more rounds
		"si", "si", "si", "si", "si",
		"n",
	)
	runner := newTestRunner(input, &out, 1)

	err := runner.Run(testClasses("one", "two", "three", "four", "five", "six"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Correct: 6/6")
}
