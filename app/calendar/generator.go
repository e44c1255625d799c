package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/jonboulle/clockwork"
	"github.com/lysyi3m/strike-cal/app/profile"
	"github.com/lysyi3m/strike-cal/app/strike"
)

const dateLayout = "20060102"

type Generator struct {
	calendar profile.Calendar
	region   profile.Region
	clock    clockwork.Clock
}

func NewGenerator(calendar profile.Calendar, region profile.Region, clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{
		calendar: calendar,
		region:   region,
		clock:    clock,
	}
}

func (g *Generator) Run(records []strike.Record) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetProductId(g.calendar.ProductID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(g.calendar.Name)
	cal.SetXWRCalDesc(g.calendar.Description)

	stamp := g.clock.Now().UTC()
	for _, record := range records {
		if !record.Span.End.After(record.Span.Start) {
			return nil, fmt.Errorf("invalid span for %s: %s..%s", record.ID,
				record.Span.Start.Format(dateLayout), record.Span.End.Format(dateLayout))
		}
		g.writeEvent(cal, record, stamp)
	}

	var sb strings.Builder
	if err := cal.SerializeTo(&sb); err != nil {
		return nil, fmt.Errorf("failed to serialize calendar: %w", err)
	}

	return []byte(sb.String()), nil
}

func (g *Generator) writeEvent(cal *ics.Calendar, record strike.Record, stamp time.Time) {
	mode := record.Classification.Mode.Label()

	event := cal.AddEvent(record.ID)
	event.SetDtStampTime(stamp)
	event.SetAllDayStartAt(record.Span.Start)
	event.SetAllDayEndAt(record.Span.End)
	event.SetSummary(g.summary(mode))
	event.SetDescription(g.description(record))

	if record.Link != "" {
		event.SetProperty(ics.ComponentPropertyUrl, record.Link)
	}

	for _, category := range []string{"Strike", "Transport", mode.EN} {
		event.AddProperty(ics.ComponentPropertyCategories, category)
	}
}

func (g *Generator) summary(mode strike.Label) string {
	return fmt.Sprintf("%s (may affect %s) / %s（可能影响%s）", mode.EN, g.region.NameEN, mode.ZH, g.region.NameZH)
}

func (g *Generator) description(record strike.Record) string {
	mode := record.Classification.Mode.Label()
	scope := record.Classification.Scope.Label()

	lines := []string{
		"EN:",
		"• Type: " + mode.EN,
		"• Scope: " + scope.EN,
		fmt.Sprintf("• This item was included by a high-recall filter (%s keywords and/or national transport action).", g.region.AreaEN),
		"• Always verify details close to the date via official notices.",
		"",
		"中文：",
		"• 类型：" + mode.ZH,
		"• 范围：" + scope.ZH,
		fmt.Sprintf("• 该条目由“高召回”过滤规则纳入（出现%s关键词，或属于全国性交通行动）。", g.region.AreaZH),
		"• 请在临近日期以官方通知为准。",
	}

	if record.Link != "" {
		lines = append(lines, "", "Source link / 来源链接：", record.Link)
	}

	return strings.Join(lines, "\n")
}
