package format

import "strings"

// Center centres each line of text between the margins. Lines are trimmed
// first; a tab counts as Tabstop columns. Empty lines stay empty.
func (f *Formatter) Center(text string) string {
	if text == "" {
		return ""
	}
	avail := f.cfg.TextWidth(0)

	var sb strings.Builder
	for _, ln := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		s := strings.TrimSpace(ln)
		if s == "" {
			sb.WriteString("\n")
			continue
		}
		visible := width(s) + strings.Count(s, "\t")*(f.cfg.Tabstop-1)
		sb.WriteString(spaces(f.cfg.LeftMargin))
		sb.WriteString(spaces((avail - visible) / 2))
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Expand replaces every tab with Tabstop spaces.
func (f *Formatter) Expand(text string) string {
	return strings.ReplaceAll(text, "\t", spaces(f.cfg.Tabstop))
}

// Unexpand replaces every run of Tabstop spaces with a tab. With a zero
// Tabstop the text is returned unchanged.
func (f *Formatter) Unexpand(text string) string {
	if f.cfg.Tabstop == 0 {
		return text
	}
	return strings.ReplaceAll(text, spaces(f.cfg.Tabstop), "\t")
}
