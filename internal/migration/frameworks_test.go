package migration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pagemove/internal/migration"
)

func TestDefaultFrameworkVocabularyTranslatesShippedIdentifiers(testInstance *testing.T) {
	testInstance.Parallel()

	vocabulary := migration.DefaultFrameworkVocabulary()

	testCases := []struct {
		name                string
		sourceFramework     string
		expectedDestination string
		expectedKnown       bool
	}{
		{name: "nextjs", sourceFramework: "nextjs", expectedDestination: "next-js", expectedKnown: true},
		{name: "case insensitive", sourceFramework: "Hugo", expectedDestination: "hugo", expectedKnown: true},
		{name: "padded", sourceFramework: "  astro  ", expectedDestination: "astro", expectedKnown: true},
		{name: "unknown", sourceFramework: "bespoke-generator", expectedDestination: "", expectedKnown: false},
		{name: "empty", sourceFramework: "", expectedDestination: "", expectedKnown: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			destinationFramework, frameworkKnown := vocabulary.Translate(testCase.sourceFramework)
			require.Equal(subTest, testCase.expectedKnown, frameworkKnown)
			require.Equal(subTest, testCase.expectedDestination, destinationFramework)
		})
	}
}

func TestParseFrameworkVocabularyRejectsMalformedDocuments(testInstance *testing.T) {
	testInstance.Parallel()

	_, parseError := migration.ParseFrameworkVocabulary([]byte("frameworks: [not, a, mapping"))
	require.Error(testInstance, parseError)
}

func TestLoadFrameworkVocabularyReadsOverrideFile(testInstance *testing.T) {
	testInstance.Parallel()

	vocabularyFilePath := filepath.Join(testInstance.TempDir(), "frameworks.yaml")
	vocabularyContent := "frameworks:\n  nextjs: custom-next\n"
	require.NoError(testInstance, os.WriteFile(vocabularyFilePath, []byte(vocabularyContent), 0o600))

	vocabulary, loadError := migration.LoadFrameworkVocabulary(vocabularyFilePath)
	require.NoError(testInstance, loadError)

	destinationFramework, frameworkKnown := vocabulary.Translate("nextjs")
	require.True(testInstance, frameworkKnown)
	require.Equal(testInstance, "custom-next", destinationFramework)
}

func TestLoadFrameworkVocabularyReportsMissingFile(testInstance *testing.T) {
	testInstance.Parallel()

	_, loadError := migration.LoadFrameworkVocabulary(filepath.Join(testInstance.TempDir(), "absent.yaml"))
	require.Error(testInstance, loadError)
}
