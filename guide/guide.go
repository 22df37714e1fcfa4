// Package guide serves the markdown pages embedded in the binary for the
// guide command. The page named "guide" is the index.
package guide

import (
	"bufio"
	"embed"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

const index = "guide"

// Topic is a guide page other than the index.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Get returns a page by name; "" is the index.
func Get(name string) (string, error) {
	if name == "" {
		name = index
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns topic names, sorted, excluding the index.
func List() ([]string, error) {
	topics, err := Topics()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names, nil
}

// Topics returns every topic with the text of its first heading.
func Topics() ([]Topic, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || name == index {
			continue
		}
		content, err := Get(name)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(content)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

// title is the first markdown heading, without its hashes.
func title(content string) string {
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
