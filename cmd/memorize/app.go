package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/memorize/memorize/internal/config"
	"github.com/memorize/memorize/internal/term"
	"github.com/memorize/memorize/internal/vocab"
)

func newMemorizeApp() *cli.App {
	return &cli.App{
		Name:  "memorize",
		Usage: "Practice learning languages.",
		Description: "Terminal vocabulary trainer. Loads word pair data files from a\n" +
			"data directory and quizzes you on them.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "load vocabulary data files from `DIR`",
				Aliases: []string{"d"},
			},
			&cli.BoolFlag{
				Name:  "no-tui",
				Usage: "use plain terminal prompts instead of the full-screen interface",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for the random word order (0 uses the clock)",
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		HideHelpCommand: true,
		Action:          runPractice,
		Commands: []*cli.Command{
			listCommand(),
			checkCommand(),
		},
	}
}

// setup loads configuration (applying flag overrides), builds the logger
// and loads all classes from the data directory.
func setup(c *cli.Context) (*config.Config, *zap.Logger, []*vocab.Class, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	classes, err := vocab.NewLoader(logger).LoadDir(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, classes, nil
}

func runPractice(c *cli.Context) error {
	if c.Bool("version") {
		return printVersion(c)
	}

	cfg, logger, classes, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if c.Bool("no-tui") {
		runner := term.NewRunner(c.App.Reader, c.App.Writer, term.Options{
			Rand:          rng,
			Logger:        logger,
			DefaultRounds: cfg.Rounds,
		})
		return runner.Run(classes)
	}

	p := tea.NewProgram(newModel(classes, rng, logger, cfg.Rounds))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate the vocabulary data files",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if c.IsSet("data-dir") {
				cfg.DataDir = c.String("data-dir")
			}

			paths, err := vocab.DataFiles(cfg.DataDir)
			if err != nil {
				return err
			}

			loader := vocab.NewLoader(nil)
			bad := 0
			for _, path := range paths {
				class, err := loader.LoadFile(path)
				if err != nil {
					bad++
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				fmt.Fprintf(c.App.Writer, "%s: ok (%d entries)\n", path, class.EntryCount())
			}

			if bad > 0 {
				return cli.Exit(fmt.Sprintf("%d invalid data file(s)", bad), ExitCodeUnknownError)
			}
			return nil
		},
	}
}
