package actors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
	"rocketsim/engine/library"
)

const (
	InputLine     = "line"
	InputKeyboard = "keyboard"
)

var inputModes = []string{InputLine, InputKeyboard}

// InitConfig sets up our Viper config object. The config file is written once,
// with the defaults only, so flags and environment overrides never stick.
func InitConfig(config *viper.Viper) error {
	config.SetEnvPrefix("ROCKETSIM")
	config.AutomaticEnv()
	if !config.IsSet("rootDir") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}
		config.SetDefault("rootDir", filepath.Join(homeDir, "rocketsim"))
	}
	setDefaults(config)
	// Create our working directory and config file if not exist
	if err := library.CreateDirectoryIfNotExists(config.GetString("rootDir")); err != nil {
		return err
	}
	path := filepath.Join(config.GetString("rootDir"), "config.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = writeDefaults(path); err != nil {
			return err
		}
	}
	config.SetConfigType("yaml")
	config.SetConfigFile(path)
	if err := config.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("logFile", "simulator.log")
	config.SetDefault("logLevel", 4)
	config.SetDefault("echoLogs", false)
	config.SetDefault("tickInterval", "1s")
	config.SetDefault("checksDuration", "2s")
	config.SetDefault("input", InputLine)
	config.SetDefault("color", true)
}

func writeDefaults(path string) error {
	defaults := viper.New()
	setDefaults(defaults)
	defaults.SetConfigType("yaml")
	defaults.SetConfigFile(path)
	if err := library.Touch(path); err != nil {
		return err
	}
	if err := defaults.WriteConfig(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Settings is the validated, typed view of the configuration.
type Settings struct {
	RootDir        string
	LogFile        string
	LogLevel       int
	EchoLogs       bool
	TickInterval   time.Duration
	ChecksDuration time.Duration
	Input          string
	Color          bool
}

// LoadSettings reads and validates the simulator settings from config.
func LoadSettings(config *viper.Viper) (Settings, error) {
	s := Settings{
		RootDir:        config.GetString("rootDir"),
		LogFile:        config.GetString("logFile"),
		LogLevel:       config.GetInt("logLevel"),
		EchoLogs:       config.GetBool("echoLogs"),
		TickInterval:   config.GetDuration("tickInterval"),
		ChecksDuration: config.GetDuration("checksDuration"),
		Input:          strings.ToLower(strings.TrimSpace(config.GetString("input"))),
		Color:          config.GetBool("color"),
	}
	if s.TickInterval < 0 {
		return Settings{}, fmt.Errorf("tickInterval must not be negative, got %s", s.TickInterval)
	}
	if s.ChecksDuration < 0 {
		return Settings{}, fmt.Errorf("checksDuration must not be negative, got %s", s.ChecksDuration)
	}
	if !slices.Contains(inputModes, s.Input) {
		return Settings{}, fmt.Errorf("input must be one of %s, got %q", strings.Join(inputModes, ", "), s.Input)
	}
	if s.LogFile == "" {
		return Settings{}, fmt.Errorf("logFile must not be empty")
	}
	if !filepath.IsAbs(s.LogFile) {
		s.LogFile = filepath.Join(s.RootDir, s.LogFile)
	}
	return s, nil
}

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	if conf == nil {
		conf = viper.New()
	}
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}
