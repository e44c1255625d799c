package feed

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/mmcdole/gofeed"
	"golang.org/x/text/encoding/unicode"
)

var (
	ErrNoEntries       = errors.New("feed has no entries")
	errNoCompleteEntry = errors.New("no complete entry to recover")
)

var xmlEncodingDecl = regexp.MustCompile(`^(\s*<\?xml[^>]*?encoding=)["'][^"']*["']`)

var entryEndTags = [][]byte{[]byte("</item>"), []byte("</entry>")}

type attempt struct {
	name    string
	prepare func([]byte) ([]byte, error)
	// partial attempts drop part of the document
	partial bool
}

// Parser reads RSS/Atom documents. Raw bytes are tried first, then the
// document decoded as forced UTF-8, then that document cut after its last
// complete entry.
type Parser struct {
	gofeedParser *gofeed.Parser
	attempts     []attempt
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
		attempts: []attempt{
			{name: "raw", prepare: func(data []byte) ([]byte, error) { return data, nil }},
			{name: "utf8", prepare: forceUTF8},
			{name: "truncated", prepare: truncateToLastEntry, partial: true},
		},
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	var firstErr error

	for _, a := range p.attempts {
		prepared, err := a.prepare(data)
		if err != nil {
			slog.Debug("Feed parse attempt skipped", "attempt", a.name, "error", err)
			continue
		}

		feed, err := p.gofeedParser.Parse(bytes.NewReader(prepared))
		if err == nil {
			if a.partial {
				slog.Warn("Feed is malformed, using recovered entries", "attempt", a.name, "items", len(feed.Items), "cause", firstErr)
			}
			return p.normalize(feed)
		}

		slog.Debug("Feed parse attempt failed", "attempt", a.name, "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, nil, fmt.Errorf("failed to parse feed: %w (cause: %v)", ErrNoEntries, firstErr)
}

func (p *Parser) normalize(feed *gofeed.Feed) (*Metadata, []Item, error) {
	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.normalizeItem(item))
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	return Item{
		Title:       item.Title,
		Summary:     cmp.Or(item.Description, item.Content),
		Link:        item.Link,
		PublishedAt: item.PublishedParsed,
		UpdatedAt:   item.UpdatedParsed,
	}
}

// forceUTF8 drops a leading BOM, replaces invalid byte sequences with U+FFFD
// and makes the XML prolog agree with the new encoding.
func forceUTF8(data []byte) ([]byte, error) {
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode as UTF-8: %w", err)
	}
	return xmlEncodingDecl.ReplaceAll(decoded, []byte(`${1}"UTF-8"`)), nil
}

// truncateToLastEntry keeps everything up to the last complete item or entry
// and closes the elements that were open around it.
func truncateToLastEntry(data []byte) ([]byte, error) {
	decoded, err := forceUTF8(data)
	if err != nil {
		return nil, err
	}

	end := -1
	for _, tag := range entryEndTags {
		if i := bytes.LastIndex(decoded, tag); i >= 0 && i+len(tag) > end {
			end = i + len(tag)
		}
	}
	if end < 0 {
		return nil, errNoCompleteEntry
	}

	head := decoded[:end]
	out := append(make([]byte, 0, end+len("</channel></rss>")), head...)

	switch {
	case bytes.Contains(head, []byte("<rss")):
		out = append(out, "</channel></rss>"...)
	case bytes.Contains(head, []byte("<rdf:RDF")):
		out = append(out, "</rdf:RDF>"...)
	default:
		out = append(out, "</feed>"...)
	}

	return out, nil
}
