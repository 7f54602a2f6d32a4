package config

import (
	"fmt"
	"strings"
)

// Validate checks the settings that would otherwise fail deep inside a
// command. Vocabulary size and difficulty are not checked: a non-positive
// size yields no matches and an unknown difficulty filters nothing.
func (c *Config) Validate() error {
	switch c.Analyzer.TagSet {
	case "ipa", "mecab-ko":
	default:
		return fmt.Errorf("analyzer.tag_set must be ipa or mecab-ko (got %q)", c.Analyzer.TagSet)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	if c.Collection.Workers <= 0 {
		return fmt.Errorf("collection.workers must be > 0 (got %d)", c.Collection.Workers)
	}
	return nil
}
