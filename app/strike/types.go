// Package strike decides which strike notices may affect a region, when they
// happen and what they are about. Everything here is pure: no I/O, no clock.
package strike

import (
	"time"
)

type Scope int

const (
	ScopeUnspecified Scope = iota
	ScopeNational
	ScopeRegional
	ScopeProvince
	ScopeLocal
)

var scopeLabels = map[Scope]Label{
	ScopeNational:    {EN: "National", ZH: "全国"},
	ScopeRegional:    {EN: "Regional", ZH: "区域"},
	ScopeProvince:    {EN: "Province", ZH: "省级"},
	ScopeLocal:       {EN: "Local", ZH: "本地"},
	ScopeUnspecified: {EN: "Unspecified", ZH: "未注明"},
}

func (s Scope) Label() Label {
	return scopeLabels[s]
}

func (s Scope) String() string {
	return s.Label().EN
}

type Mode int

const (
	ModeGeneric Mode = iota
	ModeLocalTransit
	ModeRail
	ModeAir
	ModeRoad
)

var modeLabels = map[Mode]Label{
	ModeLocalTransit: {EN: "Local public transport strike", ZH: "城市公共交通罢工"},
	ModeRail:         {EN: "Rail strike", ZH: "铁路罢工"},
	ModeAir:          {EN: "Air transport strike", ZH: "航空相关罢工"},
	ModeRoad:         {EN: "Road transport strike", ZH: "公路交通相关罢工"},
	ModeGeneric:      {EN: "Transport strike", ZH: "交通罢工"},
}

func (m Mode) Label() Label {
	return modeLabels[m]
}

func (m Mode) String() string {
	return m.Label().EN
}

// Label is a human-readable English/Chinese text pair.
type Label struct {
	EN string
	ZH string
}

func (l Label) String() string {
	return l.EN + " / " + l.ZH
}

type Classification struct {
	Scope Scope
	Mode  Mode
}

// Span is an all-day range: Start inclusive, End exclusive.
type Span struct {
	Start time.Time
	End   time.Time
}

func (s Span) Days() int {
	return int(s.End.Sub(s.Start) / (24 * time.Hour))
}

type Record struct {
	ID             string
	Span           Span
	Classification Classification
	Link           string
	Title          string
}

// NewTextBlob joins the fields every matcher and extractor operates on.
func NewTextBlob(title, summary, link string) string {
	return title + "\n" + summary + "\n" + link
}
