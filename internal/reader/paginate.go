// Package reader provides the Bubble Tea reading interface.
package reader

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Page is one screenful of wrapped text lines.
type Page struct {
	Lines []string
}

// Paginate wraps text into pages of at most height lines, each line at
// most width terminal columns. Paragraph breaks are preserved; a word
// wider than the line is split rather than dropped.
func Paginate(text string, width, height int) []Page {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	lines := wrapText(text, width)

	var pages []Page
	for start := 0; start < len(lines); start += height {
		end := start + height
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, Page{Lines: lines[start:end]})
	}
	if len(pages) == 0 {
		pages = []Page{{}}
	}
	return pages
}

func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para == "" {
			continue
		}
		lines = append(lines, wrapParagraph(para, width)...)
		lines = append(lines, "")
	}
	// Trailing paragraph separator carries no content.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func wrapParagraph(para string, width int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(para) {
		wordWidth := runewidth.StringWidth(word)
		if wordWidth > width {
			if lineWidth > 0 {
				flush()
			}
			for _, chunk := range splitWord(word, width) {
				lines = append(lines, chunk)
			}
			continue
		}
		sep := 0
		if lineWidth > 0 {
			sep = 1
		}
		if lineWidth+sep+wordWidth > width {
			flush()
			sep = 0
		}
		if sep == 1 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}
	if lineWidth > 0 {
		flush()
	}
	return lines
}

// splitWord breaks an over-wide word into width-sized chunks by
// display columns.
func splitWord(word string, width int) []string {
	var chunks []string
	var chunk strings.Builder
	chunkWidth := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if chunkWidth+rw > width && chunkWidth > 0 {
			chunks = append(chunks, chunk.String())
			chunk.Reset()
			chunkWidth = 0
		}
		chunk.WriteRune(r)
		chunkWidth += rw
	}
	if chunkWidth > 0 {
		chunks = append(chunks, chunk.String())
	}
	return chunks
}
