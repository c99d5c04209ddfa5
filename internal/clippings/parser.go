// Package clippings turns e-reader highlight exports into highlight records.
//
// An export is a sequence of sections separated by a line of ten '=' characters:
//
//	<title> (<author>)
//	<location> | <timestamp>
//	<annotation>
//	<highlight text>
//	==========
package clippings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

const (
	sectionSeparator = "=========="
	minSectionLines  = 4
	maxLineSize      = 1024 * 1024
	byteOrderMark    = "\ufeff"
)

// Matches "Book Title (Author Name)". The author is the last parenthesised group.
var titleAuthorPattern = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)

var (
	errSectionTooShort = errors.New("section has fewer than 4 non-empty lines")
	errInvalidHeader   = errors.New("header does not match 'title (author)'")
)

// ParseResult is the outcome of parsing one export.
type ParseResult struct {
	Highlights []entities.Highlight `json:"highlights"`
	// Sections is the number of non-blank sections seen.
	Sections int `json:"sections"`
	// Skipped is the number of non-blank sections that were dropped as malformed.
	Skipped int `json:"skipped"`
}

// Parser parses highlight exports.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// Parse reads an export and returns the highlights of every well-formed section
// in file order. Malformed sections are skipped and counted, never reported as errors;
// only a read failure returns an error.
//
// On a metadata line with several '|' separators the location is the first
// segment and the timestamp the last, as in "page 3 | Location 12 | Added on ...".
func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	result := &ParseResult{Highlights: []entities.Highlight{}}
	var currentLines []string
	first := true

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, byteOrderMark)
			first = false
		}

		if strings.TrimSpace(line) == sectionSeparator {
			p.flushSection(result, currentLines)
			currentLines = nil
			continue
		}
		currentLines = append(currentLines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading export: %w", err)
	}

	// The last section may not be followed by a separator
	p.flushSection(result, currentLines)

	if result.Skipped > 0 {
		p.logger.Info("skipped malformed sections",
			zap.Int("sections", result.Sections),
			zap.Int("skipped", result.Skipped))
	}
	return result, nil
}

func (p *Parser) flushSection(result *ParseResult, lines []string) {
	nonEmpty := nonEmptyLines(lines)
	if len(nonEmpty) == 0 {
		return
	}
	result.Sections++

	highlight, err := parseSection(nonEmpty)
	if err != nil {
		result.Skipped++
		p.logger.Debug("skipping section",
			zap.Int("section", result.Sections),
			zap.String("header", nonEmpty[0]),
			zap.Error(err))
		return
	}
	result.Highlights = append(result.Highlights, *highlight)
}

func nonEmptyLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseSection(lines []string) (*entities.Highlight, error) {
	if len(lines) < minSectionLines {
		return nil, errSectionTooShort
	}

	title, author, ok := parseTitleAuthor(lines[0])
	if !ok {
		return nil, errInvalidHeader
	}

	location, timestamp := parseLocationLine(lines[1])

	// lines[2] is the annotation line and is not imported
	text := strings.TrimSpace(lines[3])

	bookID := BookID(title, author)
	return &entities.Highlight{
		ID:        HighlightID(bookID, location),
		BookID:    bookID,
		Title:     title,
		Author:    author,
		Text:      text,
		Location:  location,
		Timestamp: timestamp,
		OriginalData: &entities.OriginalData{
			Title:  title,
			Author: author,
		},
		IsEdited: false,
	}, nil
}

func parseTitleAuthor(line string) (title, author string, ok bool) {
	matches := titleAuthorPattern.FindStringSubmatch(line)
	if len(matches) != 3 {
		return "", "", false
	}
	return strings.TrimSpace(matches[1]), strings.TrimSpace(matches[2]), true
}

// parseLocationLine splits "<location> | <timestamp>". Kindle metadata lines carry
// more segments ("page | location | Added on ..."), so the timestamp is the last one.
func parseLocationLine(line string) (location, timestamp string) {
	parts := strings.Split(line, "|")
	location = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		timestamp = strings.TrimSpace(parts[len(parts)-1])
	}
	return location, timestamp
}
