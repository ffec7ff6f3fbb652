// Package term implements the plain terminal front end used when the TUI is
// disabled. All prompts read line-oriented input, so the whole flow can be
// driven by scripted readers in tests.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/memorize/memorize/internal/session"
	"github.com/memorize/memorize/internal/vocab"
)

// ErrQuit indicates the user asked to stop. End of input is treated the
// same way so piped input ends the session cleanly.
var ErrQuit = errors.New("user quit")

// categorySelectPattern matches selection tokens like "1.2", "1:2", "1.2-4"
// and "1.*". Indices in selections are 1-based.
var categorySelectPattern = regexp.MustCompile(`^(\d+)[.:]((\d+)(-(\d+))?|\*)$`)

var roundChoices = []int{5, 10, 20, 50}

// Options configures a Runner
type Options struct {
	// Rand is the random source for the practice session. Time-seeded
	// when nil.
	Rand *rand.Rand

	// Logger receives session events. Defaults to a nop logger.
	Logger *zap.Logger

	// DefaultRounds is used when the rounds prompt is left empty
	DefaultRounds int
}

// Runner drives a practice session over a reader and writer
type Runner struct {
	in     *bufio.Scanner
	out    io.Writer
	rng    *rand.Rand
	logger *zap.Logger
	rounds int
}

// NewRunner creates a Runner reading prompts from in and writing to out
func NewRunner(in io.Reader, out io.Writer, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rounds := opts.DefaultRounds
	if rounds < 1 {
		rounds = 10
	}

	return &Runner{
		in:     bufio.NewScanner(in),
		out:    out,
		rng:    opts.Rand,
		logger: logger,
		rounds: rounds,
	}
}

// Run walks the user through category selection, language selection and the
// quiz loop, then prints the session summary. A user quit (or end of input)
// is a normal way out and returns nil.
func (r *Runner) Run(classes []*vocab.Class) error {
	sess, err := r.configureSession(classes)
	if errors.Is(err, ErrQuit) {
		fmt.Fprintln(r.out, "Quitting...")
		return nil
	}
	if err != nil {
		return err
	}

	if err := r.playGame(sess); err != nil {
		if !errors.Is(err, ErrQuit) {
			return err
		}
		// Quitting mid-game still gets a summary of what was played.
		fmt.Fprintln(r.out, "Quitting...")
	}

	r.printSummary(sess.Summary())
	return nil
}

// configureSession prompts for categories and a language pair and builds
// the session
func (r *Runner) configureSession(classes []*vocab.Class) (*session.Session, error) {
	categories, err := r.selectCategories(classes)
	if err != nil {
		return nil, err
	}

	dicts := vocab.Build(categories)
	if len(dicts) == 0 {
		return nil, vocab.ErrEmptyDictionary
	}

	dict, err := r.selectDictionary(dicts)
	if err != nil {
		return nil, err
	}

	return session.New(dict, session.Options{Rand: r.rng, Logger: r.logger})
}

// selectCategories prints the selection screen and parses the response.
// An empty response selects everything.
func (r *Runner) selectCategories(classes []*vocab.Class) ([]vocab.Category, error) {
	fmt.Fprintln(r.out, "The following classes are available:")
	fmt.Fprintln(r.out)
	for classIndex, class := range classes {
		fmt.Fprintf(r.out, "%d. %s\n", classIndex+1, class.Name)
		for catIndex, cat := range class.Categories {
			fmt.Fprintf(r.out, "\t%d.%d %s\n", classIndex+1, catIndex+1, cat.Name)
		}
		fmt.Fprintln(r.out)
	}

	response, err := r.prompt("Enter your selection: ('q' quits, empty selects everything) ")
	if err != nil {
		return nil, err
	}

	if response == "" {
		fmt.Fprintln(r.out, "Selecting everything...")
		return vocab.AllCategories(classes), nil
	}

	indices, err := r.parseSelection(response, classes)
	if err != nil {
		return nil, err
	}

	var categories []vocab.Category
	for _, idx := range indices {
		categories = append(categories, classes[idx[0]].Categories[idx[1]])
	}
	return categories, nil
}

// parseSelection turns a selection string like "1.2 1.4-6 2.*" into sorted
// (class, category) index pairs
func (r *Runner) parseSelection(response string, classes []*vocab.Class) ([][2]int, error) {
	choices := map[[2]int]bool{}

	for _, token := range strings.Fields(response) {
		match := categorySelectPattern.FindStringSubmatch(token)
		if match == nil {
			fmt.Fprintf(r.out, "'%s' is an invalid selection\n", token)
			continue
		}

		// The pattern only matches digits, so Atoi cannot fail here.
		classIndex, _ := strconv.Atoi(match[1])
		classIndex--
		if classIndex < 0 || classIndex >= len(classes) {
			fmt.Fprintf(r.out, "Class %d is out of range (maximum is %d)\n", classIndex+1, len(classes))
			continue
		}

		nCategories := len(classes[classIndex].Categories)
		start, end := 0, nCategories
		if match[2] != "*" {
			start, _ = strconv.Atoi(match[3])
			start--
			end = start + 1
			if match[5] != "" {
				end, _ = strconv.Atoi(match[5])
			}
		}

		for catIndex := start; catIndex < end && catIndex < nCategories; catIndex++ {
			if catIndex >= 0 {
				choices[[2]int{classIndex, catIndex}] = true
			}
		}
	}

	if len(choices) == 0 {
		fmt.Fprintln(r.out, "No selection could be made")
		return nil, ErrQuit
	}

	indices := make([][2]int, 0, len(choices))
	for idx := range choices {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool {
		if indices[i][0] != indices[j][0] {
			return indices[i][0] < indices[j][0]
		}
		return indices[i][1] < indices[j][1]
	})
	return indices, nil
}

// selectDictionary asks for a language pair when more than one is available
func (r *Runner) selectDictionary(dicts []*vocab.Dictionary) (*vocab.Dictionary, error) {
	if len(dicts) == 1 {
		fmt.Fprintf(r.out, "Selecting %s\n", dicts[0].Languages)
		return dicts[0], nil
	}

	fmt.Fprintln(r.out, "Select a language pair:")
	for index, dict := range dicts {
		fmt.Fprintf(r.out, "\t%d. %s\n", index+1, dict.Languages)
	}
	fmt.Fprintln(r.out)

	for {
		response, err := r.prompt("Enter your selection: ('q' quits) ")
		if err != nil {
			return nil, err
		}

		choice, err := strconv.Atoi(response)
		if err != nil {
			fmt.Fprintf(r.out, "Invalid response '%s'\n", response)
			continue
		}
		if choice < 1 || choice > len(dicts) {
			fmt.Fprintf(r.out, "Choice out of range: %d\n", choice)
			continue
		}
		return dicts[choice-1], nil
	}
}

// askRounds prompts for the number of rounds to play
func (r *Runner) askRounds() (int, error) {
	fmt.Fprintln(r.out, "How many rounds?")
	fmt.Fprintf(r.out, "\t1. %d rounds\t\t2. %d rounds\n", roundChoices[0], roundChoices[1])
	fmt.Fprintf(r.out, "\t3. %d rounds\t\t4. %d rounds\n", roundChoices[2], roundChoices[3])
	fmt.Fprintln(r.out)

	for {
		response, err := r.prompt("Enter your selection: ('q' quits) ")
		if err != nil {
			return 0, err
		}

		if response == "" {
			fmt.Fprintf(r.out, "Defaulting to %d rounds\n\n", r.rounds)
			return r.rounds, nil
		}

		choice, err := strconv.Atoi(response)
		if err != nil {
			fmt.Fprintf(r.out, "Invalid response: '%s'\n", response)
			continue
		}
		if choice >= 1 && choice <= len(roundChoices) {
			fmt.Fprintln(r.out)
			return roundChoices[choice-1], nil
		}
		fmt.Fprintf(r.out, "Choice out of range: %d\n", choice)
	}
}

// playGame runs rounds until they are exhausted and the user declines more
func (r *Runner) playGame(sess *session.Session) error {
	roundsLeft, err := r.askRounds()
	if err != nil {
		return err
	}

	for roundsLeft > 0 {
		if err := r.playRound(sess); err != nil {
			return err
		}
		roundsLeft--

		if roundsLeft == 0 {
			response, err := r.prompt("Play more? (y/n) ")
			if err != nil {
				return err
			}
			if strings.EqualFold(response, "y") {
				roundsLeft, err = r.askRounds()
				if err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// playRound asks one word, allowing up to three guesses. An empty answer
// offers to quit.
func (r *Runner) playRound(sess *session.Session) error {
	round := sess.StartRound()

	if sess.Streak > session.MinStreakDisplay {
		fmt.Fprintf(r.out, "%30s: %d\n", "Streak", sess.Streak)
	}
	fmt.Fprintf(r.out, "%30s: %s\n", "Your word is", round.Word)

	for round.GuessesLeft > 0 {
		// Answers are read verbatim so that a literal "q" can still be a
		// valid translation; quitting mid-round goes through the empty
		// answer confirmation.
		answer, err := r.readLine(fmt.Sprintf("%30s: ", fmt.Sprintf("Answer (%s left)", guessesLabel(round.GuessesLeft))))
		if err != nil {
			return err
		}

		if answer == "" {
			confirm, err := r.readLine("Do you want to quit? (y/n) ")
			if err != nil {
				return err
			}
			if strings.EqualFold(confirm, "y") {
				return ErrQuit
			}
			continue
		}

		switch sess.Submit(answer) {
		case session.ResultCorrect:
			fmt.Fprintf(r.out, "\n%s\n", sess.Congratulation())
			if others := round.OtherAnswers(answer); len(others) > 0 {
				fmt.Fprintf(r.out, "Other answers could have been %s\n", strings.Join(others, " or "))
			}
			fmt.Fprintln(r.out)
			return nil

		case session.ResultTryAgain:
			fmt.Fprintf(r.out, "%30s\n", "Incorrect")

		case session.ResultMissed:
			fmt.Fprintf(r.out, "%30s\n", "Incorrect")
			if len(round.Answers) == 1 {
				fmt.Fprintf(r.out, "\n%s\nThe correct answer was %s\n\n", sess.Commiseration(), round.Answers[0])
			} else {
				fmt.Fprintf(r.out, "\n%s\nThe correct answers were %s\n\n", sess.Commiseration(), strings.Join(round.Answers, " or "))
			}
			return nil
		}
	}

	return nil
}

// printSummary reports the final results
func (r *Runner) printSummary(summary session.Summary) {
	fmt.Fprintf(r.out, "Total tests: %d\n", summary.Attempted)
	fmt.Fprintf(r.out, "Correct: %d/%d\n", summary.Correct, summary.Attempted)

	if len(summary.MissedWords) == 0 {
		fmt.Fprintln(r.out, "There were no missed words")
	} else {
		fmt.Fprintln(r.out, "Missed words:")
		for _, word := range summary.MissedWords {
			fmt.Fprintf(r.out, "\t%s\n", word)
		}
	}

	if len(summary.PracticeWords) > 0 {
		fmt.Fprintln(r.out, "Words to practice:")
		for _, word := range summary.PracticeWords {
			fmt.Fprintf(r.out, "\t%s\n", word)
		}
	}
}

// prompt writes a menu prompt and reads one line. "q" and end of input
// both surface as ErrQuit.
func (r *Runner) prompt(text string) (string, error) {
	response, err := r.readLine(text)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(response, "q") {
		return "", ErrQuit
	}
	return response, nil
}

// readLine writes a prompt and reads one line verbatim, trimming
// surrounding whitespace. End of input surfaces as ErrQuit so piped input
// ends the session cleanly.
func (r *Runner) readLine(text string) (string, error) {
	fmt.Fprint(r.out, text)

	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(r.out)
		return "", ErrQuit
	}

	return strings.TrimSpace(r.in.Text()), nil
}

func guessesLabel(guesses int) string {
	if guesses == 1 {
		return "1 guess"
	}
	return fmt.Sprintf("%d guesses", guesses)
}
