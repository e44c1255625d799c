package strike

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

const (
	idPrefix          = "mit-strike-"
	DefaultRegionSlug = "milan"
)

// MakeID derives a calendar UID from link and title so that subscribers see
// the same event across regenerations.
func MakeID(link, title, regionSlug string) string {
	if regionSlug == "" {
		regionSlug = DefaultRegionSlug
	}

	hash := sha1.Sum([]byte(fmt.Sprintf("%s|%s", link, title)))
	return idPrefix + hex.EncodeToString(hash[:]) + "@" + regionSlug
}
