package config

import "time"

// Config is the root application configuration.
type Config struct {
	Inspect InspectConfig `yaml:"inspect"`
	Log     LogConfig     `yaml:"log"`
}

// InspectConfig holds notebook inspection settings.
type InspectConfig struct {
	Path          string        `yaml:"path"           env:"GANYMEDE_NOTEBOOK"       env-default:"./samples/test.ipynb"`
	Format        string        `yaml:"format"         env:"GANYMEDE_FORMAT"         env-default:"text"`
	Mode          string        `yaml:"mode"           env:"GANYMEDE_MODE"           env-default:"source"`
	Pretty        bool          `yaml:"pretty"         env:"GANYMEDE_PRETTY"         env-default:"false"`
	Render        bool          `yaml:"render"         env:"GANYMEDE_RENDER"         env-default:"false"`
	WordWrap      int           `yaml:"word_wrap"      env:"GANYMEDE_WORD_WRAP"      env-default:"80"`
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"GANYMEDE_WATCH_DEBOUNCE" env-default:"200ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level    string `yaml:"level"    env:"LOG_LEVEL"    env-default:"warn"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"console"`
}
