// Package config is the ambient configuration layer of spec.md §6: YAML
// documents that load into the parser's and analyzers' plain Go option
// structs, plus a default-logger constructor. Grounded on the teacher's own
// configuration idiom — v2/pkg/engine/plan.Configuration's zero-value
// defaulting ("if config.Logger == nil, config.Logger = abstractlogger.Noop{}")
// and the module-wide use of jensneuse/abstractlogger for every package that
// accepts an optional logger.
package config

import (
	"os"

	"github.com/jensneuse/abstractlogger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/graphql-tools/qlcore/pkg/astparser"
)

// ParserConfig is the YAML-loadable form of astparser.Config.
type ParserConfig struct {
	RubyCompatibility bool `yaml:"rubyCompatibility"`
	MaxDepth          int  `yaml:"maxDepth"`
}

// ToAstParserConfig converts to the parser's own option struct.
func (c ParserConfig) ToAstParserConfig() astparser.Config {
	return astparser.Config{
		RubyCompatibility: c.RubyCompatibility,
		MaxDepth:          c.MaxDepth,
	}
}

// AnalyzerConfig is the YAML-loadable form of the operationanalysis
// analyzers' per-run options. InputSizeWeights feeds directly into
// operationanalysis.NewInputSize/Analyze as their scalarWeights parameter.
type AnalyzerConfig struct {
	InputSizeWeights map[string]int `yaml:"inputSizeWeights"`
}

// ScalarWeights returns c.InputSizeWeights, or nil if unset — the same
// "nil means every scalar costs the default of 1" contract
// operationanalysis.NewInputSize documents.
func (c AnalyzerConfig) ScalarWeights() map[string]int {
	return c.InputSizeWeights
}

// LoggingConfig selects and configures the process-wide default logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error". Empty disables
	// logging entirely (the logger is abstractlogger.Noop{}).
	Level string `yaml:"level"`
}

// Logger builds the logger c describes. An empty Level yields
// abstractlogger.Noop{}, the teacher's own zero-value default; any other
// recognized level builds a zap-backed production logger at that level.
func (c LoggingConfig) Logger() (abstractlogger.Logger, error) {
	if c.Level == "" {
		return abstractlogger.Noop{}, nil
	}
	level, err := zapLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return abstractlogger.NewZapLogger(zapLogger, level), nil
}

func zapLevel(level string) (abstractlogger.Level, error) {
	switch level {
	case "debug":
		return abstractlogger.DebugLevel, nil
	case "info":
		return abstractlogger.InfoLevel, nil
	case "warn":
		return abstractlogger.WarnLevel, nil
	case "error":
		return abstractlogger.ErrorLevel, nil
	default:
		return 0, &UnknownLevelError{Level: level}
	}
}

// UnknownLevelError reports a LoggingConfig.Level that names no known zap
// level.
type UnknownLevelError struct {
	Level string
}

func (e *UnknownLevelError) Error() string {
	return "config: unknown logging level " + e.Level
}

// Config is the top-level YAML document: parser options, analyzer weights,
// and logging, loaded together so a single file configures a whole run.
type Config struct {
	Parser   ParserConfig   `yaml:"parser"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads and parses a Config document from data.
func Load(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile reads a Config document from the file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Load(data)
}
