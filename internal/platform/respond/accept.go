package respond

import (
	"strconv"
	"strings"
)

type format int

const (
	formatJSON format = iota
	formatCBOR
)

type acceptRange struct {
	mediaType string
	q         float64
}

// parseAccept splits an Accept header into media ranges with their quality.
// Malformed ranges are skipped; a malformed q counts as 1.
func parseAccept(header string) []acceptRange {
	var ranges []acceptRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		if mt == "" || !strings.Contains(mt, "/") {
			continue
		}
		q := 1.0
		for _, p := range params[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || strings.TrimSpace(k) != "q" {
				continue
			}
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}
		ranges = append(ranges, acceptRange{mediaType: mt, q: q})
	}
	return ranges
}

// quality returns the highest q among ranges matching any of the given types.
// Exact matches beat wildcards, so "application/cbor;q=0, */*" excludes CBOR.
func quality(ranges []acceptRange, types ...string) float64 {
	best, exact := -1.0, false
	for _, r := range ranges {
		for _, t := range types {
			switch {
			case r.mediaType == t:
				if !exact || r.q > best {
					best = r.q
				}
				exact = true
			case !exact && matchesWildcard(r.mediaType, t) && r.q > best:
				best = r.q
			}
		}
	}
	return best
}

func matchesWildcard(pattern, mediaType string) bool {
	if pattern == "*/*" {
		return true
	}
	prefix, ok := strings.CutSuffix(pattern, "/*")
	return ok && strings.HasPrefix(mediaType, prefix+"/")
}

// selectFormat picks CBOR only when the client ranks it strictly above JSON.
// Missing, wildcard-only and unsupported Accept headers get JSON.
func selectFormat(accept string) format {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return formatJSON
	}
	cborQ := quality(ranges, "application/cbor", contentTypeProblemCBOR)
	jsonQ := quality(ranges, "application/json", contentTypeProblemJSON)
	if cborQ > 0 && cborQ > jsonQ {
		return formatCBOR
	}
	return formatJSON
}
