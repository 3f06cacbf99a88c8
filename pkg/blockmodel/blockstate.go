package blockmodel

import "sort"

// Default returns the variant used when no block properties are known:
// the "" or "normal" variant, else the alphabetically first key so the
// choice does not depend on map order.
func (bs *BlockState) Default() (Variant, bool) {
	if v, ok := bs.Variants[""]; ok && len(v) > 0 {
		return v[0], true
	}
	if v, ok := bs.Variants["normal"]; ok && len(v) > 0 {
		return v[0], true
	}

	keys := make([]string, 0, len(bs.Variants))
	for k := range bs.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if v := bs.Variants[k]; len(v) > 0 {
			return v[0], true
		}
	}
	return Variant{}, false
}
