package changelog

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// groupStyle defines the color and icon used for a display group when
// previewing the changelog on a terminal.
type groupStyle struct {
	Color *color.Color
	Icon  string
}

// groupStyles maps the default group names to their terminal styling.
// Groups without an entry fall back to plainStyle.
var groupStyles = map[string]groupStyle{
	"Added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"Changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"Deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"Removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"Fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"Security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var plainStyle = groupStyle{Color: color.New(color.FgWhite), Icon: "•"}

// PreviewOptions controls terminal preview formatting.
type PreviewOptions struct {
	// Plain disables colors and icons.
	Plain bool
}

// Preview writes the changelog to the writer with terminal styling
// instead of Markdown. Sections render in stored order with color-coded
// group headings; the link footer is omitted.
func (c *ChangeLog) Preview(w io.Writer, opts PreviewOptions) error {
	for i, section := range c.sections {
		if section.CommitCount() == 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := previewSection(section, w, opts); err != nil {
			return fmt.Errorf("previewing section %s: %w", section.anchorName(), err)
		}
	}
	return nil
}

func previewSection(s *Section, w io.Writer, opts PreviewOptions) error {
	if err := writeSectionHeader(s, w, opts); err != nil {
		return err
	}

	for _, heading := range s.headings {
		commits := s.groups[heading.Name]
		if len(commits) == 0 {
			continue
		}
		if err := writeGroupPreview(heading.Name, commits, w, opts); err != nil {
			return err
		}
	}

	return nil
}

func writeSectionHeader(s *Section, w io.Writer, opts PreviewOptions) error {
	header := s.anchorName()
	if s.Tag != nil && !s.Tag.Date.IsZero() {
		header = fmt.Sprintf("%s (%s)", header, s.Tag.Date.Format("2006-01-02"))
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeGroupPreview(name string, commits []ConvCommit, w io.Writer, opts PreviewOptions) error {
	style, ok := groupStyles[name]
	if !ok {
		style = plainStyle
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n%s:\n", name); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "\n%s:\n", style.Color.Sprint(name)); err != nil {
			return err
		}
	}

	for _, commit := range commits {
		bullet := "-"
		if !opts.Plain {
			bullet = style.Icon
		}
		if _, err := fmt.Fprintf(w, "  %s %s\n", bullet, commit.String()); err != nil {
			return err
		}
	}

	return nil
}
