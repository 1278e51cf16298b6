package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration. None of these keys affect
// parsing semantics, only presentation defaults for the exporters and
// the terminal player.
type Config struct {
	Title            string `mapstructure:"title"`
	SoftOptionLimit  int    `mapstructure:"soft_option_limit"`
	ShuffleQuestions bool   `mapstructure:"shuffle_questions"`
	ShuffleAnswers   bool   `mapstructure:"shuffle_answers"`
	ColorQuestion    string `mapstructure:"color_question"`
	ColorCorrect     string `mapstructure:"color_correct"`
	ColorWrong       string `mapstructure:"color_wrong"`
	ColorDim         string `mapstructure:"color_dim"`
	ColorBorder      string `mapstructure:"color_border"`
	ColorCursor      string `mapstructure:"color_cursor"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("title", "Quiz")
	viper.SetDefault("soft_option_limit", 10)
	viper.SetDefault("shuffle_questions", false)
	viper.SetDefault("shuffle_answers", false)
	viper.SetDefault("color_question", "36") // Cyan
	viper.SetDefault("color_correct", "32")  // Green
	viper.SetDefault("color_wrong", "31")    // Red
	viper.SetDefault("color_dim", "241")
	viper.SetDefault("color_border", "240")
	viper.SetDefault("color_cursor", "212")

	viper.SetConfigName("quizmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "quizmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("QUIZMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetTitle returns the default quiz title
func GetTitle() string {
	return viper.GetString("title")
}

// GetSoftOptionLimit returns the option count above which consumers warn
func GetSoftOptionLimit() int {
	return viper.GetInt("soft_option_limit")
}

// GetShuffleQuestions returns the default question shuffle setting
func GetShuffleQuestions() bool {
	return viper.GetBool("shuffle_questions")
}

// GetShuffleAnswers returns the default answer shuffle setting
func GetShuffleAnswers() bool {
	return viper.GetBool("shuffle_answers")
}

// GetColorQuestion returns ANSI color code for question text
func GetColorQuestion() string {
	return viper.GetString("color_question")
}

// GetColorCorrect returns ANSI color code for correct answers
func GetColorCorrect() string {
	return viper.GetString("color_correct")
}

// GetColorWrong returns ANSI color code for wrong answers
func GetColorWrong() string {
	return viper.GetString("color_wrong")
}

// GetColorDim returns ANSI color code for secondary text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorBorder returns the color for borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorCursor returns the color for the selection cursor
func GetColorCursor() string {
	return viper.GetString("color_cursor")
}

// SetTitle sets the quiz title at runtime
func SetTitle(title string) {
	viper.Set("title", title)
	C.Title = title
}
