package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/memorize/memorize/internal/session"
	"github.com/memorize/memorize/internal/vocab"
)

type view int

const (
	viewCategories view = iota
	viewLanguages
	viewRounds
	viewQuiz
	viewMoreRounds
	viewSummary
)

type quizState int

const (
	quizGuessing quizState = iota
	quizRetry
	quizCorrect
	quizMissed
)

var roundMenu = []int{5, 10, 20, 50}

// moreRoundMenu has a leading zero meaning "Finish"
var moreRoundMenu = []int{0, 5, 10, 20, 50}

// catItem is one selectable category row in the selection view
type catItem struct {
	classIndex int
	catIndex   int
	label      string
	enabled    bool
}

type model struct {
	view    view
	classes []*vocab.Class
	rng     *rand.Rand
	logger  *zap.Logger

	defaultRounds int

	// category selection
	catItems  []catItem
	catCursor int

	// language selection
	dicts      []*vocab.Dictionary
	langCursor int

	// rounds selection
	roundsCursor int
	moreCursor   int
	roundsLeft   int

	// quiz
	sess       *session.Session
	round      *session.Round
	input      textinput.Model
	quizState  quizState
	lastAnswer string
	lostStreak int

	summary session.Summary
	err     error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	screenStyle = lipgloss.NewStyle().
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	classStyle = lipgloss.NewStyle().
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	missedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func newModel(classes []*vocab.Class, rng *rand.Rand, logger *zap.Logger, defaultRounds int) model {
	var items []catItem
	for classIndex, class := range classes {
		for catIndex, cat := range class.Categories {
			items = append(items, catItem{
				classIndex: classIndex,
				catIndex:   catIndex,
				label:      fmt.Sprintf("%d.%d %s", classIndex+1, catIndex+1, cat.Name),
				enabled:    true,
			})
		}
	}

	input := textinput.New()
	input.Placeholder = "your answer"

	return model{
		view:          viewCategories,
		classes:       classes,
		rng:           rng,
		logger:        logger,
		defaultRounds: defaultRounds,
		catItems:      items,
		roundsCursor:  1, // 10 rounds
		input:         input,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewCategories:
		return m.updateCategories(keyMsg)
	case viewLanguages:
		return m.updateLanguages(keyMsg)
	case viewRounds:
		return m.updateRounds(keyMsg)
	case viewQuiz:
		return m.updateQuiz(keyMsg)
	case viewMoreRounds:
		return m.updateMoreRounds(keyMsg)
	case viewSummary:
		return m, tea.Quit
	}

	return m, nil
}

func (m model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.catCursor > 0 {
			m.catCursor--
		}

	case "down", "j":
		if m.catCursor < len(m.catItems)-1 {
			m.catCursor++
		}

	case " ":
		if len(m.catItems) > 0 {
			m.catItems[m.catCursor].enabled = !m.catItems[m.catCursor].enabled
			m.err = nil
		}

	case "enter":
		return m.handleCategorySelection()
	}

	return m, nil
}

func (m model) handleCategorySelection() (tea.Model, tea.Cmd) {
	var categories []vocab.Category
	for _, item := range m.catItems {
		if item.enabled {
			categories = append(categories, m.classes[item.classIndex].Categories[item.catIndex])
		}
	}

	m.dicts = vocab.Build(categories)
	if len(m.dicts) == 0 {
		m.err = vocab.ErrEmptyDictionary
		return m, nil
	}

	if len(m.dicts) == 1 {
		return m.startSession(m.dicts[0])
	}

	m.view = viewLanguages
	return m, nil
}

func (m model) updateLanguages(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.langCursor > 0 {
			m.langCursor--
		}

	case "down", "j":
		if m.langCursor < len(m.dicts)-1 {
			m.langCursor++
		}

	case "enter":
		return m.startSession(m.dicts[m.langCursor])
	}

	return m, nil
}

func (m model) startSession(dict *vocab.Dictionary) (tea.Model, tea.Cmd) {
	sess, err := session.New(dict, session.Options{Rand: m.rng, Logger: m.logger})
	if err != nil {
		m.err = err
		m.view = viewCategories
		return m, nil
	}

	m.sess = sess
	m.err = nil
	m.view = viewRounds
	return m, nil
}

func (m model) updateRounds(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.roundsCursor > 0 {
			m.roundsCursor--
		}

	case "down", "j":
		if m.roundsCursor < len(roundMenu)-1 {
			m.roundsCursor++
		}

	case "enter":
		m.roundsLeft = roundMenu[m.roundsCursor]
		return m.startRound()
	}

	return m, nil
}

func (m model) startRound() (tea.Model, tea.Cmd) {
	m.round = m.sess.StartRound()
	m.quizState = quizGuessing
	m.lostStreak = 0
	m.lastAnswer = ""
	m.input.Reset()
	m.input.Focus()
	m.view = viewQuiz
	return m, textinput.Blink
}

func (m model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.finishSession()

	case "enter":
		switch m.quizState {
		case quizGuessing:
			return m.handleAnswerSubmission()

		case quizRetry:
			m.quizState = quizGuessing
			m.input.Reset()
			m.input.Focus()
			return m, textinput.Blink

		case quizCorrect, quizMissed:
			return m.finishRound()
		}
	}

	if m.quizState == quizGuessing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleAnswerSubmission() (tea.Model, tea.Cmd) {
	answer := m.input.Value()
	if strings.TrimSpace(answer) == "" {
		return m, nil
	}

	m.lastAnswer = answer
	prevStreak := m.sess.Streak

	switch m.sess.Submit(answer) {
	case session.ResultCorrect:
		m.quizState = quizCorrect

	case session.ResultTryAgain:
		m.quizState = quizRetry
		if prevStreak >= session.MinStreakDisplay {
			m.lostStreak = prevStreak
		}

	case session.ResultMissed:
		m.quizState = quizMissed
		if prevStreak >= session.MinStreakDisplay {
			m.lostStreak = prevStreak
		}
	}

	m.input.Blur()
	return m, nil
}

func (m model) finishRound() (tea.Model, tea.Cmd) {
	m.roundsLeft--
	if m.roundsLeft <= 0 {
		m.moreCursor = 0
		m.view = viewMoreRounds
		return m, nil
	}
	return m.startRound()
}

func (m model) finishSession() (tea.Model, tea.Cmd) {
	m.summary = m.sess.Summary()
	m.view = viewSummary
	return m, nil
}

func (m model) updateMoreRounds(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.finishSession()

	case "up", "k":
		if m.moreCursor > 0 {
			m.moreCursor--
		}

	case "down", "j":
		if m.moreCursor < len(moreRoundMenu)-1 {
			m.moreCursor++
		}

	case "enter":
		if moreRoundMenu[m.moreCursor] == 0 {
			return m.finishSession()
		}
		m.roundsLeft = moreRoundMenu[m.moreCursor]
		return m.startRound()
	}

	return m, nil
}

func (m model) View() string {
	switch m.view {
	case viewCategories:
		return m.renderCategories()
	case viewLanguages:
		return m.renderLanguages()
	case viewRounds:
		return m.renderRounds()
	case viewQuiz:
		return m.renderQuiz()
	case viewMoreRounds:
		return m.renderMoreRounds()
	case viewSummary:
		return m.renderSummary()
	}
	return ""
}

func (m model) renderCategories() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Memorize - The following classes are available:"))
	s.WriteString("\n\n")

	lastClass := -1
	for i, item := range m.catItems {
		if item.classIndex != lastClass {
			if lastClass != -1 {
				s.WriteString("\n")
			}
			lastClass = item.classIndex
			s.WriteString(classStyle.Render(fmt.Sprintf("%d. %s", item.classIndex+1, m.classes[item.classIndex].Name)))
			s.WriteString("\n")
		}

		checkbox := "[ ]"
		if item.enabled {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s", checkbox, item.label)
		if i == m.catCursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString(normalStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("Nothing to practice: select at least one vocabulary category"))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(hintStyle.Render("Use ↑/↓ or j/k to navigate, Space to toggle, Enter to confirm, q to quit"))

	return screenStyle.Render(s.String())
}

func (m model) renderLanguages() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Select a language pair:"))
	s.WriteString("\n\n")

	for i, dict := range m.dicts {
		line := fmt.Sprintf("%s (%d words)", dict.Languages, dict.Len())
		if i == m.langCursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString(normalStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(hintStyle.Render("Use ↑/↓ or j/k to navigate, Enter to select, q to quit"))

	return screenStyle.Render(s.String())
}

func (m model) renderRoundsMenu(title string, items []int, cursor int) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	for i, n := range items {
		line := fmt.Sprintf("%d rounds", n)
		if n == 0 {
			line = "Finish"
		}
		if i == cursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString(normalStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(hintStyle.Render("Use ↑/↓ or j/k to navigate, Enter to select"))

	return screenStyle.Render(s.String())
}

func (m model) renderRounds() string {
	return m.renderRoundsMenu("How many rounds?", roundMenu, m.roundsCursor)
}

func (m model) renderMoreRounds() string {
	return m.renderRoundsMenu("Play more rounds?", moreRoundMenu, m.moreCursor)
}

// quizTitle shows the test number, plus the streak once it is worth showing
func (m model) quizTitle() string {
	if m.lostStreak > 0 {
		return fmt.Sprintf("Test #%d | Streak of %d lost...", m.sess.Attempted, m.lostStreak)
	}
	if m.sess.Streak >= session.MinStreakDisplay {
		return fmt.Sprintf("Test #%d | Streak: %d", m.sess.Attempted, m.sess.Streak)
	}
	return fmt.Sprintf("Test #%d", m.sess.Attempted)
}

func (m model) renderQuiz() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.quizTitle()))
	s.WriteString("\n\n")
	s.WriteString("Your word is:\n")
	s.WriteString(classStyle.Render(m.round.Word))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Answer (%s left):\n", guessesLabel(m.round.GuessesLeft)))
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	switch m.quizState {
	case quizRetry:
		s.WriteString(missedStyle.Render("Incorrect"))
		s.WriteString("\n")
		s.WriteString(hintStyle.Render("Press Enter to retry..."))

	case quizCorrect:
		s.WriteString(correctStyle.Render(m.sess.Congratulation()))
		s.WriteString("\n")
		if others := m.round.OtherAnswers(m.lastAnswer); len(others) > 0 {
			s.WriteString(fmt.Sprintf("Other answers could have been %s\n", strings.Join(others, " or ")))
		}
		s.WriteString(hintStyle.Render("Press Enter to continue..."))

	case quizMissed:
		s.WriteString(missedStyle.Render(m.sess.Commiseration()))
		s.WriteString("\n")
		if len(m.round.Answers) == 1 {
			s.WriteString(fmt.Sprintf("The correct answer was %s\n", m.round.Answers[0]))
		} else {
			s.WriteString(fmt.Sprintf("The correct answers were %s\n", strings.Join(m.round.Answers, " or ")))
		}
		s.WriteString(hintStyle.Render("Press Enter to continue..."))

	default:
		s.WriteString(hintStyle.Render("Press Enter to submit, Esc to finish"))
	}

	return screenStyle.Render(s.String())
}

func (m model) renderSummary() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Session summary"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Total tests: %d\n", m.summary.Attempted))
	s.WriteString(fmt.Sprintf("Correct: %d/%d\n", m.summary.Correct, m.summary.Attempted))
	if m.summary.BestStreak > 0 {
		s.WriteString(fmt.Sprintf("Best streak: %d\n", m.summary.BestStreak))
	}
	s.WriteString("\n")

	if len(m.summary.MissedWords) == 0 {
		s.WriteString("There were no missed words\n")
	} else {
		s.WriteString(missedStyle.Render("Missed words:"))
		s.WriteString("\n")
		for _, word := range m.summary.MissedWords {
			s.WriteString(fmt.Sprintf("    %s\n", word))
		}
	}

	if len(m.summary.PracticeWords) > 0 {
		s.WriteString("\nWords to practice:\n")
		for _, word := range m.summary.PracticeWords {
			s.WriteString(fmt.Sprintf("    %s\n", word))
		}
	}

	s.WriteString("\n")
	s.WriteString(hintStyle.Render("Press any key to quit..."))

	return screenStyle.Render(s.String())
}

func guessesLabel(guesses int) string {
	if guesses == 1 {
		return "1 guess"
	}
	return fmt.Sprintf("%d guesses", guesses)
}
