package fetcher

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

type topicQuery struct {
	Kind     string `yaml:"kind"`
	Version  string `yaml:"version"`
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
	Keywords []string `yaml:"keywords"`
}

// loadTopicQuery parses the embedded keyword config into the OR-joined
// provider query string.
func loadTopicQuery() (string, error) {
	var tq topicQuery
	if err := yaml.Unmarshal(keywordsYAML, &tq); err != nil {
		return "", fmt.Errorf("parse topic query config: %w", err)
	}
	if tq.Kind != "TopicQuery" {
		return "", fmt.Errorf("unexpected config kind: %q", tq.Kind)
	}
	if len(tq.Keywords) == 0 {
		return "", fmt.Errorf("topic query config has no keywords")
	}
	return strings.Join(tq.Keywords, " OR "), nil
}
