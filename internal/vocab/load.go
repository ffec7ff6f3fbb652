package vocab

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// MaxFileSize is the maximum allowed data file size (10MB)
const MaxFileSize = 10 * 1024 * 1024

// DefaultPair is the language pair assumed for pair files that carry no
// directive line.
var DefaultPair = PairKey{Prompt: "term", Answer: "translation"}

// Loader reads class files from disk
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new Loader instance
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadDir loads every class file in a directory, sorted by file name.
// It fails if the directory is missing or contains no usable files.
func (l *Loader) LoadDir(dir string) ([]*Class, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var classes []*Class
	for _, entry := range entries {
		if entry.IsDir() || !isClassFile(entry.Name()) {
			continue
		}

		class, err := l.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if len(classes) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, dir)
	}

	l.logger.Info("loaded vocabulary data",
		zap.String("dir", dir),
		zap.Int("classes", len(classes)))

	return classes, nil
}

// LoadFile parses a single class file, detecting the format by extension
func (l *Loader) LoadFile(path string) (*Class, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), MaxFileSize)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return l.loadJSON(path)
	case ".tsv":
		return l.loadTSV(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// DataFiles returns the paths of all class files in a directory, sorted by
// file name
func DataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isClassFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// isClassFile reports whether a file name has a supported extension
func isClassFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".json" || ext == ".tsv"
}

// jsonClass mirrors the class file envelope on the wire
type jsonClass struct {
	ClassName  string         `json:"class_name"`
	Categories []jsonCategory `json:"categories"`
}

type jsonCategory struct {
	CategoryName     string           `json:"category_name"`
	CategoryType     string           `json:"category_type"`
	CategoryContents []map[string]any `json:"category_contents"`
}

// loadJSON parses a JSON class file. Entries that do not match the expected
// shape are skipped with a warning rather than failing the whole file.
func (l *Loader) loadJSON(path string) (*Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()

	var jc jsonClass
	if err := json.NewDecoder(f).Decode(&jc); err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if jc.ClassName == "" {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("missing class_name")}
	}

	class := &Class{Name: jc.ClassName}
	for _, jcat := range jc.Categories {
		cat := Category{
			Name: jcat.CategoryName,
			Type: ParseCategoryType(jcat.CategoryType),
		}

		for i, obj := range jcat.CategoryContents {
			entry, ok := entryFromObject(obj)
			if !ok {
				l.logger.Warn("skipping malformed vocabulary entry",
					zap.String("file", path),
					zap.String("category", jcat.CategoryName),
					zap.Int("index", i))
				continue
			}
			cat.Entries = append(cat.Entries, entry)
		}

		class.Categories = append(class.Categories, cat)
	}

	return class, nil
}

// entryFromObject converts a decoded entry object to an Entry. A valid entry
// has exactly two keys: one mapping to a string (the prompt side) and one
// mapping to a list of strings (the answer side).
func entryFromObject(obj map[string]any) (Entry, bool) {
	if len(obj) != 2 {
		return Entry{}, false
	}

	var (
		promptLang, answerLang string
		prompt                 string
		answers                []string
		haveStr, haveList      bool
	)

	for key, value := range obj {
		switch v := value.(type) {
		case string:
			if haveStr || v == "" {
				return Entry{}, false
			}
			haveStr = true
			promptLang = key
			prompt = v

		case []any:
			if haveList || len(v) == 0 {
				return Entry{}, false
			}
			for _, item := range v {
				s, ok := item.(string)
				if !ok || s == "" {
					return Entry{}, false
				}
				answers = append(answers, s)
			}
			haveList = true
			answerLang = key

		default:
			return Entry{}, false
		}
	}

	if !haveStr || !haveList {
		return Entry{}, false
	}

	return Entry{
		Languages: PairKey{Prompt: promptLang, Answer: answerLang},
		Prompt:    prompt,
		Answers:   answers,
	}, true
}

// loadTSV parses a tab-separated pair file. Each data line holds a prompt
// word followed by one or more accepted answers. Blank lines and # comments
// are ignored but still count toward line numbers. A leading "#!" directive
// of the form "#! spanish -> english" sets the language pair.
func (l *Loader) loadTSV(path string) (*Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pair file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pair := DefaultPair
	cat := Category{Name: name, Type: TypeVocabulary}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#!") {
			directive, err := parsePairDirective(trimmed)
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNo, Err: err}
			}
			pair = directive
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, &ParseError{Path: path, Line: lineNo,
				Err: fmt.Errorf("expected at least 2 tab-separated fields, got %d", len(fields))}
		}

		entry := Entry{Languages: pair, Prompt: strings.TrimSpace(fields[0])}
		for _, field := range fields[1:] {
			entry.Answers = append(entry.Answers, strings.TrimSpace(field))
		}

		if entry.Prompt == "" {
			return nil, &ParseError{Path: path, Line: lineNo, Err: fmt.Errorf("empty term")}
		}
		for _, answer := range entry.Answers {
			if answer == "" {
				return nil, &ParseError{Path: path, Line: lineNo, Err: fmt.Errorf("empty translation")}
			}
		}

		cat.Entries = append(cat.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pair file: %w", err)
	}

	return &Class{Name: name, Categories: []Category{cat}}, nil
}

// parsePairDirective parses a "#! prompt -> answer" language directive
func parsePairDirective(line string) (PairKey, error) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#!"))
	parts := strings.Split(body, "->")
	if len(parts) != 2 {
		return PairKey{}, fmt.Errorf("invalid language directive %q (expected \"#! prompt -> answer\")", line)
	}

	pair := PairKey{
		Prompt: strings.TrimSpace(parts[0]),
		Answer: strings.TrimSpace(parts[1]),
	}
	if pair.Prompt == "" || pair.Answer == "" {
		return PairKey{}, fmt.Errorf("invalid language directive %q (empty language name)", line)
	}

	return pair, nil
}
