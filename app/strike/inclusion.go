package strike

// NationalMarker is checked literally and independently of DetectScope.
const NationalMarker = "nazionale"

var nationalMarker = NewKeywordSet([]string{NationalMarker})

type Reason string

const (
	ReasonNone     Reason = ""
	ReasonGeo      Reason = "geo"
	ReasonNational Reason = "national"
)

// Decide reports why a blob is relevant to the region. Geographic keywords
// win on their own; national actions count only for the given transport modes.
func Decide(blob string, geo *KeywordSet, includeNational bool, nationalModes *KeywordSet) Reason {
	if geo.Matches(blob) {
		return ReasonGeo
	}
	if includeNational && nationalMarker.Matches(blob) && nationalModes.Matches(blob) {
		return ReasonNational
	}
	return ReasonNone
}

func ShouldInclude(blob string, geo *KeywordSet, includeNational bool, nationalModes *KeywordSet) bool {
	return Decide(blob, geo, includeNational, nationalModes) != ReasonNone
}
