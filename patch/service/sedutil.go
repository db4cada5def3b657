package service

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// applyRules runs each rule over the output of the previous one and returns the
// transformed text and the total number of replaced matches.
func applyRules(text string, rules []Rule) (string, int, error) {
	total := 0
	for i, rule := range rules {
		expr, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return text, total, fmt.Errorf("rule %d: invalid pattern %q: %w", i, rule.Pattern, err)
		}
		matches := len(expr.FindAllStringIndex(text, -1))
		if matches == 0 {
			continue
		}
		total += matches
		text = expr.ReplaceAllLiteralString(text, rule.Replacement)
	}
	return text, total, nil
}

// previewDiff renders a patch-text diff, truncated to diffCap bytes when positive.
func previewDiff(before, after string, diffCap int) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	text := dmp.PatchToText(dmp.PatchMake(before, diffs))
	if diffCap > 0 && len(text) > diffCap {
		n := diffCap
		for n > 0 && !utf8.RuneStart(text[n]) {
			n--
		}
		text = text[:n] + "\n... (truncated)"
	}
	return text
}
