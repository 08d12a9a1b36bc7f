package watcher

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carangas-hq/carangas-catalog/internal/domain"
)

// Fingerprint identifies a vehicle snapshot. Any field change yields a new value.
func Fingerprint(v domain.Vehicle) string {
	h := sha1.New()
	h.Write([]byte(v.ID))
	h.Write([]byte{0})
	// Struct encoding emits fields in declaration order, so the output is stable.
	// Marshal only fails for a NaN or infinite price; those still hash every field.
	payload, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00%v", v.Name, v.Brand, v.GasType, v.Price)
	} else {
		h.Write(payload)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// brandIndex matches vehicle brands against the reference list, case-insensitively,
// on any of the brand's names.
type brandIndex map[string]struct{}

func newBrandIndex(brands []domain.Brand) brandIndex {
	idx := make(brandIndex, len(brands)*2)
	for _, b := range brands {
		for _, name := range []string{b.Name, b.FipeName, b.Key} {
			if key := normalizeBrand(name); key != "" {
				idx[key] = struct{}{}
			}
		}
	}
	return idx
}

func (idx brandIndex) known(brand string) bool {
	_, ok := idx[normalizeBrand(brand)]
	return ok
}

func normalizeBrand(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
