// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package messages

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Substitution tokens understood by the default catalog.
const (
	TokenPlayer    = "player"
	TokenAttacker  = "attacker"
	TokenCount     = "count"
	TokenMax       = "max"
	TokenCountdown = "countdown"
	TokenTeam      = "team"
	TokenScores    = "scores"
	TokenMap       = "map"
	TokenMessage   = "message"
)

// Substitutions replace "{token}" placeholders.
type Substitutions map[string]string

// Catalog maps dotted keys such as "death.void" to message templates.
type Catalog struct {
	messages map[string]string
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded message catalog is invalid: %v", err))
	}
	return c
}

// Load reads a yaml catalog from path on top of the embedded one. An empty path returns the default.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read message catalog: %w", err)
	}
	overrides, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for key, message := range overrides.messages {
		c.messages[key] = message
	}

	return c, nil
}

// Parse decodes a nested yaml document into a catalog.
func Parse(data []byte) (*Catalog, error) {
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}

	c := &Catalog{messages: make(map[string]string)}
	flatten("", tree, c.messages)

	return c, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]interface{}:
			flatten(full, v, out)
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

// Get returns the raw template of key, or "" when it is unknown.
func (c *Catalog) Get(key string) string {
	return c.messages[key]
}

// Translate renders key with subs.
func (c *Catalog) Translate(key string, subs Substitutions) string {
	message := c.messages[key]
	if message == "" || len(subs) == 0 {
		return message
	}

	replacements := make([]string, 0, len(subs)*2)
	for token, value := range subs {
		replacements = append(replacements, "{"+token+"}", value)
	}

	return strings.NewReplacer(replacements...).Replace(message)
}
