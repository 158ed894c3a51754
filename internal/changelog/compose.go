package changelog

import (
	"strings"

	"github.com/relnote-dev/relnote/internal/git"
)

// placeholderEntry fills release sections whose window classified no
// commits. Such releases still happened, typically carrying only dependency
// bumps, and full-history documents must show them.
const placeholderEntry = "Dependency updates only"

// ComposeSection renders one release section:
//
//	## <tag>
//
//	`<date>`
//
//	* <entry>
//
// Every entry becomes one bullet; an empty entry list renders the
// dependency-update placeholder instead.
func ComposeSection(tag git.Tag, entries []string) string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(tag.Name)
	b.WriteString("\n\n`")
	b.WriteString(tag.ReleaseDate)
	b.WriteString("`\n\n")

	if len(entries) == 0 {
		b.WriteString("* ")
		b.WriteString(placeholderEntry)
		b.WriteString("\n")
		return b.String()
	}

	for _, entry := range entries {
		b.WriteString("* ")
		b.WriteString(entry)
		b.WriteString("\n")
	}
	return b.String()
}

// JoinSections assembles release sections into one document with a blank
// line between consecutive sections. Sections end in a newline already, so
// a single separator newline produces exactly one blank line.
func JoinSections(sections []string) string {
	return strings.Join(sections, "\n")
}
