// Package classify assigns sector and impact tags to article text using
// keyword heuristics. Classification is pure: no I/O, no state.
package classify

import (
	"regexp"
	"strings"

	"github.com/nexusai/newsnexus/internal/domain"
)

// sectorRules are evaluated in order; the first matching pattern wins.
// The order is part of the contract: reclassifying existing articles with a
// different precedence would silently move them between sectors.
var sectorRules = []struct {
	sector  domain.Sector
	pattern *regexp.Regexp
}{
	{domain.SectorEngineering, regexp.MustCompile(`chip|gpu|hardware|semiconductor|nvidia|computing|processor|tech|software|robot`)},
	{domain.SectorHealth, regexp.MustCompile(`health|medical|diagnosis|patient|healthcare|radiology|disease|hospital|clinical`)},
	{domain.SectorFinance, regexp.MustCompile(`finance|trading|bank|crypto|stock|market|investment|fintech|payment`)},
	{domain.SectorEducation, regexp.MustCompile(`education|learning|school|university|student|teacher|training|course`)},
	{domain.SectorLegal, regexp.MustCompile(`law|legal|regulation|policy|government|court|compliance|ethics`)},
}

var highImpactKeywords = []string{
	"breakthrough", "revolutionary", "major", "significant",
	"unprecedented", "landmark", "game-changing", "critical",
}

var mediumImpactKeywords = []string{
	"important", "notable", "announces", "launches",
	"introduces", "updates", "improves",
}

var aiKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml",
	"deep learning", "neural", "chatgpt", "gpt", "llm",
	"openai", "claude", "gemini", "transformer", "generative",
	"computer vision", "nlp", "natural language",
}

// SectorOf matches the lower-cased text against the ordered sector patterns,
// falling back to General.
func SectorOf(text string) domain.Sector {
	lower := strings.ToLower(text)
	for _, rule := range sectorRules {
		if rule.pattern.MatchString(lower) {
			return rule.sector
		}
	}
	return domain.SectorGeneral
}

// ImpactOf checks high-impact keywords before medium-impact ones; anything
// matching neither set is Low.
func ImpactOf(text string) domain.ImpactLevel {
	lower := strings.ToLower(text)
	if containsAny(lower, highImpactKeywords) {
		return domain.ImpactHigh
	}
	if containsAny(lower, mediumImpactKeywords) {
		return domain.ImpactMedium
	}
	return domain.ImpactLow
}

func Classify(text string) (domain.Sector, domain.ImpactLevel) {
	return SectorOf(text), ImpactOf(text)
}

// AIRelated reports whether the text mentions at least one AI topic keyword.
// Substring matching, same as the sector rules.
func AIRelated(text string) bool {
	return containsAny(strings.ToLower(text), aiKeywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
