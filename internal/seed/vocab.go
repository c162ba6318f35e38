package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the category/tag word list used when generating posts.
type Vocabulary struct {
	Categories []string `yaml:"categories"`
	Tags       []string `yaml:"tags"`
}

// DefaultVocabulary returns the built-in word list.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Categories: []string{
			"Technology", "Travel", "Food", "Science", "Music",
			"Books", "Finance", "Health", "Gaming", "Photography",
		},
		Tags: []string{
			"go", "tutorial", "opinion", "review", "howto",
			"ai", "cloud", "linux", "databases", "web",
			"budget", "remote", "diy", "beginners", "deep-dive",
		},
	}
}

// LoadVocabulary reads a YAML vocabulary file. Missing sections fall back to
// the defaults.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	defaults := DefaultVocabulary()
	if len(vocab.Categories) == 0 {
		vocab.Categories = defaults.Categories
	}
	if len(vocab.Tags) == 0 {
		vocab.Tags = defaults.Tags
	}
	return vocab, nil
}
