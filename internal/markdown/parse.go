package markdown

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Document is a Markdown file split into its YAML frontmatter and body.
type Document struct {
	Frontmatter map[string]any
	Body        string

	raw string
}

// Decode unmarshals the raw frontmatter into v.
func (d Document) Decode(v any) error {
	return yaml.Unmarshal([]byte(d.raw), v)
}

// ParseFile reads a Markdown file and splits off its frontmatter.
func ParseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse splits r into frontmatter and body. Frontmatter is only recognized
// when the very first line is "---"; it ends at the next line that is "---"
// once trimmed. Everything after that line is the body, byte for byte.
func Parse(r io.Reader) (Document, error) {
	br := bufio.NewReader(r)
	d := Document{Frontmatter: map[string]any{}}

	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return Document{}, err
	}
	if strings.TrimRight(first, "\r\n") != fence {
		rest, err := io.ReadAll(br)
		if err != nil {
			return Document{}, err
		}
		d.Body = first + string(rest)
		return d, nil
	}

	var fm strings.Builder
	closed := false
	for {
		line, err := br.ReadString('\n')
		if strings.TrimSpace(line) == fence {
			closed = true
			break
		}
		fm.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Document{}, err
		}
	}
	if !closed {
		return Document{}, fmt.Errorf("markdown: unterminated frontmatter")
	}
	rest, err := io.ReadAll(br)
	if err != nil {
		return Document{}, err
	}
	d.Body = string(rest)
	d.raw = fm.String()
	if err := yaml.Unmarshal([]byte(d.raw), &d.Frontmatter); err != nil {
		return Document{}, fmt.Errorf("markdown: frontmatter: %w", err)
	}
	if d.Frontmatter == nil {
		d.Frontmatter = map[string]any{}
	}
	return d, nil
}
