package bot

import "strings"

// Classify maps raw text to exactly one intent. FAQ rules are tested first,
// then API rules, then the default intent. A message hitting triggers from
// two groups resolves to whichever group is tested first; that precedence is
// a policy decision and callers may rely on it.
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	for _, rule := range faqRules {
		if containsAny(lower, rule.Triggers) {
			return rule.Intent
		}
	}
	for _, rule := range apiRules {
		if containsAny(lower, rule.Triggers) {
			return rule.Intent
		}
	}
	return IntentDefault
}

func containsAny(text string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
