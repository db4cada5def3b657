package service

import "strings"

// Placeholder patterns accept each '?' either bare or escaped as '\?'.
const (
	doubleQuotedPair   = `content: "(?:\\?\?){2}";`
	doubleQuotedTriple = `content: "(?:\\?\?){3}";`
	singleQuotedPair   = `content: '(?:\\?\?){2}';`
)

// DefaultSpec is the compiled-in patch table.
var DefaultSpec = Spec{
	{Path: "frontend/src/pages/ProductDetail.css", Rules: []Rule{
		{Pattern: doubleQuotedPair, Replacement: `content: "👤";`},
	}},
	{Path: "frontend/src/index.css", Rules: []Rule{
		{Pattern: doubleQuotedPair, Replacement: `content: "👤";`},
		{Pattern: doubleQuotedTriple, Replacement: `content: "🛍️";`},
	}},
	{Path: "frontend/src/pages/Explore.module.css", Rules: []Rule{
		{Pattern: singleQuotedPair, Replacement: `content: '🔍';`},
	}},
	{Path: "frontend/src/components/AffiliateTab.css", Rules: []Rule{
		{Pattern: singleQuotedPair, Replacement: `content: '💰';`},
	}},
}

// Filter returns the entries whose path is listed, preserving table order.
// An empty filter returns the spec unchanged.
func (s Spec) Filter(paths []string) Spec {
	if len(paths) == 0 {
		return s
	}
	wanted := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			wanted[p] = true
		}
	}
	var out Spec
	for _, e := range s {
		if wanted[e.Path] {
			out = append(out, e)
		}
	}
	return out
}
