package strike

import (
	"log/slog"
	"time"

	"github.com/lysyi3m/strike-cal/app/feed"
)

type Config struct {
	GeoKeywords     *KeywordSet
	IncludeNational bool
	NationalModes   *KeywordSet
	Classifier      *Classifier
	RegionSlug      string
}

type Result struct {
	Records []Record

	Seen     int // items in the feed
	Matched  int // items relevant to the region
	Undated  int // relevant items dropped for lack of any date
	Included int
}

type Pipeline struct {
	config Config
}

func NewPipeline(config Config) *Pipeline {
	if config.Classifier == nil {
		config.Classifier = NewClassifier(DefaultModeKeywords())
	}
	if config.RegionSlug == "" {
		config.RegionSlug = DefaultRegionSlug
	}
	return &Pipeline{config: config}
}

// Run turns feed items into calendar records, keeping feed order.
func (p *Pipeline) Run(items []feed.Item) Result {
	result := Result{
		Records: make([]Record, 0, len(items)),
		Seen:    len(items),
	}

	for _, item := range items {
		record, reason, ok := p.process(item)
		if reason == ReasonNone {
			continue
		}
		result.Matched++

		if !ok {
			result.Undated++
			slog.Debug("Item skipped, no usable date", "title", item.Title, "link", item.Link)
			continue
		}

		slog.Debug("Item included", "title", item.Title, "reason", string(reason),
			"start", record.Span.Start.Format(time.DateOnly), "days", record.Span.Days())
		result.Records = append(result.Records, record)
	}

	result.Included = len(result.Records)
	return result
}

func (p *Pipeline) process(item feed.Item) (Record, Reason, bool) {
	blob := NewTextBlob(item.Title, item.Summary, item.Link)

	reason := Decide(blob, p.config.GeoKeywords, p.config.IncludeNational, p.config.NationalModes)
	if reason == ReasonNone {
		return Record{}, reason, false
	}

	dates := ExtractDates(blob)
	if len(dates) == 0 {
		if ts := item.Timestamp(); ts != nil {
			dates = []time.Time{DateOf(*ts)}
		}
	}

	span, ok := ChooseSpan(dates)
	if !ok {
		return Record{}, reason, false
	}

	return Record{
		ID:             MakeID(item.Link, item.Title, p.config.RegionSlug),
		Span:           span,
		Classification: p.config.Classifier.Run(blob),
		Link:           item.Link,
		Title:          item.Title,
	}, reason, true
}
