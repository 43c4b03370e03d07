package migration

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	vocabularyParseErrorTemplateConstant = "unable to parse framework vocabulary: %w"
	vocabularyReadErrorTemplateConstant  = "unable to read framework vocabulary file %s: %w"
)

//go:embed frameworks.yaml
var embeddedFrameworkVocabularyContent []byte

// FrameworkVocabulary maps source framework identifiers to destination identifiers. Identifiers
// absent from the vocabulary are omitted from payloads so the destination auto-detects at build time.
type FrameworkVocabulary map[string]string

type frameworkVocabularyDocument struct {
	Frameworks map[string]string `yaml:"frameworks"`
}

// Translate resolves the destination identifier for a source framework.
func (vocabulary FrameworkVocabulary) Translate(sourceFramework string) (string, bool) {
	normalizedFramework := strings.ToLower(strings.TrimSpace(sourceFramework))
	if len(normalizedFramework) == 0 {
		return "", false
	}
	destinationFramework, frameworkKnown := vocabulary[normalizedFramework]
	return destinationFramework, frameworkKnown
}

// ParseFrameworkVocabulary decodes a YAML vocabulary document.
func ParseFrameworkVocabulary(vocabularyData []byte) (FrameworkVocabulary, error) {
	var document frameworkVocabularyDocument
	if unmarshalError := yaml.Unmarshal(vocabularyData, &document); unmarshalError != nil {
		return nil, fmt.Errorf(vocabularyParseErrorTemplateConstant, unmarshalError)
	}

	vocabulary := make(FrameworkVocabulary, len(document.Frameworks))
	for sourceFramework, destinationFramework := range document.Frameworks {
		vocabulary[strings.ToLower(strings.TrimSpace(sourceFramework))] = strings.TrimSpace(destinationFramework)
	}
	return vocabulary, nil
}

// LoadFrameworkVocabulary reads a vocabulary file from disk.
func LoadFrameworkVocabulary(vocabularyFilePath string) (FrameworkVocabulary, error) {
	vocabularyData, readError := os.ReadFile(vocabularyFilePath)
	if readError != nil {
		return nil, fmt.Errorf(vocabularyReadErrorTemplateConstant, vocabularyFilePath, readError)
	}
	return ParseFrameworkVocabulary(vocabularyData)
}

// DefaultFrameworkVocabulary returns the embedded vocabulary shipped with the binary.
func DefaultFrameworkVocabulary() FrameworkVocabulary {
	vocabulary, parseError := ParseFrameworkVocabulary(embeddedFrameworkVocabularyContent)
	if parseError != nil {
		return FrameworkVocabulary{}
	}
	return vocabulary
}
