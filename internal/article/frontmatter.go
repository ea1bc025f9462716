package article

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the structured metadata block at the top of an article
// document. Pointer fields distinguish "absent" from zero values: on an
// update, only present fields are written.
type FrontMatter struct {
	Title       *string  `yaml:"title"       json:"title,omitempty"`
	Date        *string  `yaml:"date"        json:"date,omitempty"`
	Description *string  `yaml:"description" json:"description,omitempty"`
	Image       *string  `yaml:"image"       json:"image,omitempty"`
	Tags        []string `yaml:"tags"        json:"tags,omitempty"`
	Published   *bool    `yaml:"published"   json:"published,omitempty"`
	IsSticky    *bool    `yaml:"isSticky"    json:"isSticky,omitempty"`
}

var frontMatterFence = []byte("---")

// ParseDocument splits a raw article document into its front matter and
// Markdown body. A document without a leading fence has no front matter and
// is returned whole as the body. A fenced block that fails to decode as YAML
// is reported as an error; callers in batch paths degrade it per the
// parse-failure policy instead of aborting.
func ParseDocument(raw []byte) (FrontMatter, string, error) {
	var fm FrontMatter

	trimmed := bytes.TrimLeft(raw, "\ufeff") // tolerate a BOM
	if !bytes.HasPrefix(trimmed, frontMatterFence) {
		return fm, string(raw), nil
	}

	rest := trimmed[len(frontMatterFence):]
	// the fence must end its line
	if nl := bytes.IndexByte(rest, '\n'); nl < 0 || len(bytes.TrimSpace(rest[:nl])) > 0 {
		return fm, string(raw), nil
	}

	rest = rest[bytes.IndexByte(rest, '\n')+1:]

	end := findClosingFence(rest)
	if end < 0 {
		return fm, string(raw), nil
	}

	block := rest[:end]
	body := rest[end:]
	// skip the closing fence line
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}

	if err := yaml.Unmarshal(block, &fm); err != nil {
		return FrontMatter{}, string(raw), err
	}

	return fm, string(body), nil
}

// findClosingFence returns the offset of the line starting the closing
// fence, or -1 when the block never closes.
func findClosingFence(b []byte) int {
	offset := 0
	for {
		line := b[offset:]
		if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
		}

		if bytes.Equal(bytes.TrimSpace(line), frontMatterFence) {
			return offset
		}

		nl := bytes.IndexByte(b[offset:], '\n')
		if nl < 0 {
			return -1
		}
		offset += nl + 1

		if offset >= len(b) {
			return -1
		}
	}
}
