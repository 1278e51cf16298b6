package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/quizmd/internal/config"
	"github.com/gubarz/quizmd/internal/exporter"
	"github.com/gubarz/quizmd/internal/quiz"
	"github.com/gubarz/quizmd/internal/ui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "quizmd",
	Short: "Markdown quiz parser and exporter",
	Long: `Parse quizzes written in plain markdown and turn them into
Anki decks, Flashcard Hero decks, self-contained HTML quizzes,
or Word documents. Or just play them in the terminal.

Questions are separated by ---, answers are list items marked
- (x) for single choice or - [x] for multiple choice, and an
optional "# reason" section explains the answer.`,
	SilenceUsage: true,
}

var htmlCmd = &cobra.Command{
	Use:   "html INPUT OUTPUT",
	Short: "Export an interactive single-file HTML quiz",
	Args:  cobra.ExactArgs(2),
	RunE:  runHTML,
}

var ankiCmd = &cobra.Command{
	Use:   "anki INPUT OUTPUT",
	Short: "Export an Anki importable CSV deck",
	Long: `Exports a semicolon-separated CSV for Anki.

With --quiz (the default) the deck targets the AllInOne (kprim/mc/sc)
note type and keeps the answer options on the card. With --recall the
deck uses plain Basic notes: question on the front, the correct
answers on the back.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnki,
}

var flashheroCmd = &cobra.Command{
	Use:   "flashhero INPUT OUTPUT",
	Short: "Export a Flashcard Hero TSV deck",
	Args:  cobra.ExactArgs(2),
	RunE:  runFlashhero,
}

var docxCmd = &cobra.Command{
	Use:   "docx INPUT OUTPUT",
	Short: "Export a Word document with checkbox answers",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocx,
}

var playCmd = &cobra.Command{
	Use:   "play INPUT",
	Short: "Play the quiz in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

var statsCmd = &cobra.Command{
	Use:   "stats INPUT",
	Short: "Show question and answer statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(ankiCmd)
	rootCmd.AddCommand(flashheroCmd)
	rootCmd.AddCommand(docxCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)

	rootCmd.PersistentFlags().BoolP("force", "f", false, "Overwrite the output file if it exists")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	htmlCmd.Flags().String("title", "", "Quiz title shown in the page header")
	ankiCmd.Flags().Bool("quiz", false, "AllInOne deck with answer options on the card (default)")
	ankiCmd.Flags().Bool("recall", false, "Basic deck: question front, correct answers back")
	ankiCmd.MarkFlagsMutuallyExclusive("quiz", "recall")

	viper.BindPFlag("title", htmlCmd.Flags().Lookup("title"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func setupLogging(cmd *cobra.Command) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadQuestions reads and parses the input file. Parse failures are
// reported with source context on stderr and returned as a plain error
// so cobra does not repeat the details.
func loadQuestions(cmd *cobra.Command, path string) ([]quiz.Question, error) {
	setupLogging(cmd)

	if !strings.EqualFold(filepath.Ext(path), ".md") {
		fmt.Fprintf(os.Stderr, "Warning: %s does not look like a markdown file\n", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	questions, err := quiz.Parse(string(data))
	if err != nil {
		var diag *quiz.Diagnostic
		if errors.As(err, &diag) {
			fmt.Fprint(os.Stderr, diag.Report())
			return nil, fmt.Errorf("%s is not a valid quiz", path)
		}
		return nil, err
	}

	slog.Debug("parsed quiz", "path", path, "questions", len(questions))
	return questions, nil
}

// openOutput creates the output file, refusing to overwrite an existing
// one unless --force is set.
func openOutput(cmd *cobra.Command, path string) (*os.File, error) {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return os.Create(path)
}

func runHTML(cmd *cobra.Command, args []string) error {
	questions, err := loadQuestions(cmd, args[0])
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = config.GetTitle()
	}

	out, err := openOutput(cmd, args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	size, err := exporter.ExportHTML(out, questions, title)
	if err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	fmt.Printf("✓ Wrote %s: %d questions, %d bytes\n", args[1], len(questions), size)
	return nil
}

func runAnki(cmd *cobra.Command, args []string) error {
	questions, err := loadQuestions(cmd, args[0])
	if err != nil {
		return err
	}

	recall, _ := cmd.Flags().GetBool("recall")

	out, err := openOutput(cmd, args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	var rows int
	if recall {
		rows, err = exporter.ExportAnkiBasic(out, questions)
	} else {
		if over := exporter.CountOverOptionLimit(questions); over > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %d question(s) have more than %d options; extra options are dropped\n",
				over, exporter.MaxAllInOneOptions)
		}
		rows, err = exporter.ExportAnkiAllInOne(out, questions)
	}
	if err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	fmt.Printf("✓ Wrote %s: %d notes\n", args[1], rows)
	return nil
}

func runFlashhero(cmd *cobra.Command, args []string) error {
	questions, err := loadQuestions(cmd, args[0])
	if err != nil {
		return err
	}

	out, err := openOutput(cmd, args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	rows, err := exporter.ExportFlashcardHero(out, questions)
	if err != nil {
		return fmt.Errorf("writing tsv: %w", err)
	}
	fmt.Printf("✓ Wrote %s: %d cards\n", args[1], rows)
	return nil
}

func runDocx(cmd *cobra.Command, args []string) error {
	questions, err := loadQuestions(cmd, args[0])
	if err != nil {
		return err
	}

	out, err := openOutput(cmd, args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := exporter.ExportDocx(out, questions)
	if err != nil {
		return fmt.Errorf("writing docx: %w", err)
	}
	fmt.Printf("✓ Wrote %s: %d questions\n", args[1], n)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	questions, err := loadQuestions(cmd, args[0])
	if err != nil {
		return err
	}
	title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	return ui.Play(questions, title)
}

func runStats(cmd *cobra.Command, args []string) error {
	questions, err := loadQuestions(cmd, args[0])
	if err != nil {
		return err
	}

	s := quiz.ComputeStats(questions)
	fmt.Printf("Questions:         %d\n", s.Questions)
	fmt.Printf("  single choice:   %d\n", s.SingleChoice)
	fmt.Printf("  multiple choice: %d\n", s.MultipleChoice)
	fmt.Printf("Answer options:    %d (%.1f per question)\n", s.TotalOptions, s.AvgOptions)
	fmt.Printf("With reason:       %d\n", s.WithReason)
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
