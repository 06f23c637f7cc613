package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "table",
			choices:        []string{"table", "json", "yaml", "csv"},
			description:    "Output format.",
			expectedOutput: "`<TABLE|json|yaml|csv>` Output format.",
		},
		{
			name:           "DefaultLaterChoice",
			defaultChoice:  "json",
			choices:        []string{"table", "json"},
			description:    "Output format.",
			expectedOutput: "`<table|JSON>` Output format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "alpha",
			choices:        []string{"alpha", "beta"},
			expectedOutput: "`<ALPHA|beta>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "beta",
			choices:        []string{"beta", "beta", "alpha", "Alpha"},
			description:    "Select between options.",
			expectedOutput: "`<BETA|alpha>` Select between options.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "primary",
			choices:        []string{" primary ", " secondary "},
			description:    "Pick a palette.",
			expectedOutput: "`<PRIMARY|secondary>` Pick a palette.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestParseChoice(t *testing.T) {
	choices := []string{"table", "json", "yaml", "csv"}

	parsed, parseError := ParseChoice("format", " JSON ", "table", choices)
	require.NoError(t, parseError)
	require.Equal(t, "json", parsed)

	parsed, parseError = ParseChoice("format", "", "table", choices)
	require.NoError(t, parseError)
	require.Equal(t, "table", parsed)

	_, parseError = ParseChoice("format", "xml", "table", choices)
	var choiceError UnsupportedChoiceError
	require.ErrorAs(t, parseError, &choiceError)
	require.Equal(t, "xml", choiceError.Value)
	require.Equal(t, `unsupported format "xml" (expected one of table, json, yaml, csv)`, parseError.Error())
}
