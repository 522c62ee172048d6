package changelog

import "strings"

const defaultTitle = "Changelog"

var defaultParagraphs = []string{
	"All notable changes to this project will be documented in this file.",
	"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/) and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).",
}

// Header is the block rendered before the first section of the changelog.
type Header struct {
	Title      string
	Paragraphs []string
}

// NewHeader returns the standard Keep a Changelog header.
func NewHeader() Header {
	return Header{
		Title:      defaultTitle,
		Paragraphs: append([]string(nil), defaultParagraphs...),
	}
}

// Markdown renders the header as a level-one heading followed by its
// paragraphs, each separated by a blank line.
func (h Header) Markdown() string {
	var b strings.Builder
	b.WriteString("# " + h.Title + "\n")
	for _, p := range h.Paragraphs {
		b.WriteString("\n" + p + "\n")
	}
	return b.String()
}
