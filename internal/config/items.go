package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one entry of the scrolling list. Files may give items as bare
// strings or as objects with a key and text.
type Item struct {
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// String returns the item text.
func (i Item) String() string {
	return i.Text
}

type itemObject struct {
	Key   string `json:"key" yaml:"key"`
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Title string `json:"title" yaml:"title"`
}

func (o itemObject) item() Item {
	it := Item{Key: o.Key, Text: o.Text}
	if it.Key == "" {
		it.Key = o.ID
	}
	if it.Text == "" {
		it.Text = o.Title
	}
	return it
}

// UnmarshalJSON accepts a string, a number or an object.
func (i *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '{':
		var obj itemObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*i = obj.item()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Item{Text: s}
		return nil
	}
	*i = Item{Text: string(data)}
	return nil
}

// UnmarshalYAML accepts a scalar or a mapping.
func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*i = Item{Text: node.Value}
		return nil
	case yaml.MappingNode:
		var obj itemObject
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*i = obj.item()
		return nil
	}
	return fmt.Errorf("line %d: item must be a string or a mapping", node.Line)
}

// LoadItems reads a list file: a JSON array (.json), a YAML sequence
// (.yaml, .yml) or plain text with one item per non-blank line.
func LoadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []Item
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &items)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		items = parseLines(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse items %s: %w", path, err)
	}
	return items, nil
}

func parseLines(data []byte) []Item {
	var items []Item
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, Item{Text: line})
	}
	return items
}
