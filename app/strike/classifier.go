package strike

// Scope markers are Italian stems as they appear in ministry notices.
var scopeRules = []struct {
	keywords *KeywordSet
	scope    Scope
}{
	{NewKeywordSet([]string{"nazionale"}), ScopeNational},
	{NewKeywordSet([]string{"regionale"}), ScopeRegional},
	{NewKeywordSet([]string{"provinc"}), ScopeProvince},
	{NewKeywordSet([]string{"locale"}), ScopeLocal},
}

func DetectScope(text string) Scope {
	for _, rule := range scopeRules {
		if rule.keywords.Matches(text) {
			return rule.scope
		}
	}
	return ScopeUnspecified
}

// ModeKeywords lists the keywords of each transport mode. Field order is the
// matching priority.
type ModeKeywords struct {
	LocalTransit []string
	Rail         []string
	Air          []string
	Road         []string
}

func DefaultModeKeywords() ModeKeywords {
	return ModeKeywords{
		LocalTransit: []string{"trasporto pubblico locale", "tpl", "autobus", "bus", "metro", "metropolitana", "tram"},
		Rail:         []string{"ferrovi", "treni", "trenitalia", "rfi", "italo", "trenord"},
		Air:          []string{"aereo", "aeroport", "enav", "handling"},
		Road:         []string{"autostrad", "taxi"},
	}
}

// All flattens the lists in priority order.
func (m ModeKeywords) All() []string {
	all := make([]string, 0, len(m.LocalTransit)+len(m.Rail)+len(m.Air)+len(m.Road))
	all = append(all, m.LocalTransit...)
	all = append(all, m.Rail...)
	all = append(all, m.Air...)
	all = append(all, m.Road...)
	return all
}

type modeRule struct {
	keywords *KeywordSet
	mode     Mode
}

type Classifier struct {
	modeRules []modeRule
}

func NewClassifier(modes ModeKeywords) *Classifier {
	return &Classifier{
		modeRules: []modeRule{
			{NewKeywordSet(modes.LocalTransit), ModeLocalTransit},
			{NewKeywordSet(modes.Rail), ModeRail},
			{NewKeywordSet(modes.Air), ModeAir},
			{NewKeywordSet(modes.Road), ModeRoad},
		},
	}
}

func (c *Classifier) DetectMode(text string) Mode {
	for _, rule := range c.modeRules {
		if rule.keywords.Matches(text) {
			return rule.mode
		}
	}
	return ModeGeneric
}

func (c *Classifier) Run(text string) Classification {
	return Classification{
		Scope: DetectScope(text),
		Mode:  c.DetectMode(text),
	}
}
