package session

import (
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/memorize/memorize/internal/vocab"
)

const (
	// GuessesPerRound is the number of attempts allowed per word
	GuessesPerRound = 3

	// RecentWordCount is the size of the window of recently asked words
	// that are not drawn again. The window is disabled for dictionaries
	// that are not larger than it.
	RecentWordCount = 10

	// MinStreakDisplay is the streak length at which front ends start
	// showing the streak
	MinStreakDisplay = 5
)

// Result is the outcome of submitting an answer
type Result int

const (
	// ResultCorrect means the answer was accepted and the round is over
	ResultCorrect Result = iota

	// ResultTryAgain means the answer was wrong but guesses remain
	ResultTryAgain

	// ResultMissed means the answer was wrong and the word is missed
	ResultMissed
)

// Round is the state of one word being asked
type Round struct {
	Word        string
	Answers     []string
	GuessesLeft int
}

// Accepts reports whether an answer matches one of the accepted answers.
// Comparison is Unicode case-folded and ignores surrounding whitespace.
func (r *Round) Accepts(answer string) bool {
	folded := fold(answer)
	for _, accepted := range r.Answers {
		if fold(accepted) == folded {
			return true
		}
	}
	return false
}

// OtherAnswers returns the accepted answers other than the one given,
// for feedback like "Other answers could have been ...".
func (r *Round) OtherAnswers(given string) []string {
	folded := fold(given)
	var others []string
	for _, accepted := range r.Answers {
		if fold(accepted) != folded {
			others = append(others, accepted)
		}
	}
	return others
}

// Options configures a Session
type Options struct {
	// Rand is the random source for word selection and phrases. A
	// time-seeded source is used when nil.
	Rand *rand.Rand

	// Logger receives session lifecycle events. Defaults to a nop logger.
	Logger *zap.Logger
}

// Session is the transient state of one practice run. It is created when
// practice starts and discarded at program exit; nothing is persisted.
type Session struct {
	Attempted  int
	Correct    int
	Streak     int
	BestStreak int

	// MissedWords are words failed after all guesses were used
	MissedWords []string

	// PracticeWords are words answered wrong at least once
	PracticeWords []string

	dict      *vocab.Dictionary
	rng       *rand.Rand
	logger    *zap.Logger
	recent    []string
	useRecent bool
	round     *Round
}

// New creates a session over a dictionary
func New(dict *vocab.Dictionary, opts Options) (*Session, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, vocab.ErrEmptyDictionary
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("starting practice session",
		zap.String("languages", dict.Languages.String()),
		zap.Int("words", dict.Len()))

	return &Session{
		dict:      dict,
		rng:       rng,
		logger:    logger,
		useRecent: dict.Len() > RecentWordCount,
	}, nil
}

// Languages returns the session's language pair
func (s *Session) Languages() vocab.PairKey {
	return s.dict.Languages
}

// StartRound draws the next word and begins a round. The word is chosen at
// random, avoiding the recent-word window.
func (s *Session) StartRound() *Round {
	word := s.randomWord()
	s.rememberWord(word)
	s.Attempted++

	s.round = &Round{
		Word:        word,
		Answers:     s.dict.Answers(word),
		GuessesLeft: GuessesPerRound,
	}
	return s.round
}

// Submit grades an answer for the current round and updates the counters
func (s *Session) Submit(answer string) Result {
	r := s.round

	if r.Accepts(answer) {
		s.Correct++
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
		return ResultCorrect
	}

	s.Streak = 0
	r.GuessesLeft--
	s.addPracticeWord(r.Word)

	if r.GuessesLeft <= 0 {
		s.addMissedWord(r.Word)
		s.logger.Debug("word missed", zap.String("word", r.Word))
		return ResultMissed
	}
	return ResultTryAgain
}

// Summary captures the results shown at the end of a session
type Summary struct {
	Attempted     int
	Correct       int
	BestStreak    int
	MissedWords   []string
	PracticeWords []string
}

// Summary returns the session results
func (s *Session) Summary() Summary {
	s.logger.Info("practice session finished",
		zap.Int("attempted", s.Attempted),
		zap.Int("correct", s.Correct),
		zap.Int("missed", len(s.MissedWords)))

	return Summary{
		Attempted:     s.Attempted,
		Correct:       s.Correct,
		BestStreak:    s.BestStreak,
		MissedWords:   s.MissedWords,
		PracticeWords: s.PracticeWords,
	}
}

// randomWord picks a random prompt word not in the recent-word window
func (s *Session) randomWord() string {
	words := s.dict.Words()
	word := words[s.rng.Intn(len(words))]
	for s.isRecent(word) {
		word = words[s.rng.Intn(len(words))]
	}
	return word
}

func (s *Session) isRecent(word string) bool {
	for _, recent := range s.recent {
		if recent == word {
			return true
		}
	}
	return false
}

// rememberWord adds a word to the recent window, trimming it when full
func (s *Session) rememberWord(word string) {
	if !s.useRecent {
		return
	}

	s.recent = append(s.recent, word)
	if len(s.recent) > RecentWordCount {
		s.recent = s.recent[1:]
	}
}

func (s *Session) addMissedWord(word string) {
	if !containsWord(s.MissedWords, word) {
		s.MissedWords = append(s.MissedWords, word)
	}
}

func (s *Session) addPracticeWord(word string) {
	if !containsWord(s.PracticeWords, word) {
		s.PracticeWords = append(s.PracticeWords, word)
	}
}

func containsWord(list []string, word string) bool {
	for _, item := range list {
		if item == word {
			return true
		}
	}
	return false
}

// fold normalizes an answer for comparison
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
