package config

import (
	"testing"

	"github.com/jensneuse/abstractlogger"
	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesAllSections(t *testing.T) {
	c, err := Load([]byte(`
parser:
  rubyCompatibility: true
  maxDepth: 32
analyzer:
  inputSizeWeights:
    Int: 10
    ID: 2
logging:
  level: debug
`))
	require.NoError(t, err)
	require.Equal(t, ParserConfig{RubyCompatibility: true, MaxDepth: 32}, c.Parser)
	require.Equal(t, map[string]int{"Int": 10, "ID": 2}, c.Analyzer.ScalarWeights())
	require.Equal(t, "debug", c.Logging.Level)
}

func TestLoad_EmptyDocumentYieldsZeroValues(t *testing.T) {
	c, err := Load([]byte(``))
	require.NoError(t, err)
	require.Nil(t, c.Analyzer.ScalarWeights())
	require.Equal(t, "", c.Logging.Level)
}

func TestParserConfig_ToAstParserConfig(t *testing.T) {
	c := ParserConfig{RubyCompatibility: true, MaxDepth: 16}
	converted := c.ToAstParserConfig()
	require.Equal(t, true, converted.RubyCompatibility)
	require.Equal(t, 16, converted.MaxDepth)
}

func TestLoggingConfig_DefaultsToNoop(t *testing.T) {
	logger, err := LoggingConfig{}.Logger()
	require.NoError(t, err)
	require.Equal(t, abstractlogger.Noop{}, logger)
}

func TestLoggingConfig_UnknownLevelIsError(t *testing.T) {
	_, err := LoggingConfig{Level: "trace"}.Logger()
	require.Error(t, err)
	var unknown *UnknownLevelError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "trace", unknown.Level)
}

func TestLoggingConfig_BuildsZapLoggerForKnownLevel(t *testing.T) {
	logger, err := LoggingConfig{Level: "info"}.Logger()
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NotEqual(t, abstractlogger.Noop{}, logger)
}
