package prd

import (
	"fmt"
	"github.com/intinc/platformexplorer/internal/models"
	"strings"
	"unicode"
)

const filenameIdeaLength = 30

// Markdown renders doc as the downloadable markdown document.
func Markdown(doc models.PRDDocument) string {
	var md strings.Builder
	md.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", doc.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))
	md.WriteString(fmt.Sprintf("**Feature Idea:** %s\n\n", doc.FeatureIdea))
	md.WriteString("---\n\n")
	for _, s := range doc.Sections {
		md.WriteString(fmt.Sprintf("# %s\n\n", s.Title))
		md.WriteString(fmt.Sprintf("%s\n\n", s.Content))
		md.WriteString("---\n\n")
	}
	return md.String()
}

// Filename is the download file name of doc, for example PRD_Add_dark_mode_2024-01-15T10-30-00.md.
func Filename(doc models.PRDDocument) string {
	var name strings.Builder
	for i, r := range []rune(doc.FeatureIdea) {
		if i == filenameIdeaLength {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			name.WriteRune(r)
		} else {
			name.WriteRune('_')
		}
	}
	return fmt.Sprintf("PRD_%s_%s.md", name.String(), doc.GeneratedAt.UTC().Format("2006-01-02T15-04-05"))
}
