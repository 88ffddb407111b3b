package rules

import (
	"strings"

	"alarm-bridge/internal/config"
)

// TagSource is the result of classifying a tag.
type TagSource struct {
	Source      string
	Enforcement string
}

// ClassifyTagSource evaluates the profile's rules in order; the first match wins.
// With no match the profile default source and enforcement are returned.
func ClassifyTagSource(p *config.ClientProfile, tagName, pointType string) TagSource {
	for _, r := range p.TagSourceRules {
		value := pointType
		if r.Field == config.FieldTagName {
			value = tagName
		}
		if ruleMatches(r, value) {
			enforcement := r.Enforcement
			if enforcement == "" {
				enforcement = config.DefaultEnforcement
			}
			return TagSource{Source: r.Source, Enforcement: enforcement}
		}
	}
	enforcement := p.DefaultEnforcement
	if enforcement == "" {
		enforcement = config.DefaultEnforcement
	}
	return TagSource{Source: p.DefaultSource, Enforcement: enforcement}
}

func ruleMatches(r config.TagSourceRule, value string) bool {
	switch r.Match {
	case config.MatchExact:
		return strings.EqualFold(value, r.Pattern)
	case config.MatchPrefix:
		return strings.HasPrefix(strings.ToUpper(value), strings.ToUpper(r.Pattern))
	case config.MatchContains:
		return strings.Contains(value, r.Pattern)
	case config.MatchInSet:
		for _, v := range r.Values {
			if strings.EqualFold(value, v) {
				return true
			}
		}
	}
	return false
}

// EnforcementForSource returns the enforcement written back to the DCS for a PHA-Pro tag source.
func EnforcementForSource(tagSource string) string {
	if strings.Contains(strings.ToLower(tagSource), "safety manager") {
		return config.EnforcementRestricted
	}
	return config.EnforcementModifiable
}
