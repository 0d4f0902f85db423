package bot

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultWeatherLocation = "London"
	defaultTimeLocation    = "your location"
	defaultBaseCurrency    = "USD"
	defaultTargetCurrency  = "EUR"
)

// knownCities is the secondary weather heuristic: city names matched anywhere
// in the text when no preposition pattern is found.
var knownCities = []string{"paris", "new york", "tokyo", "berlin", "moscow", "beijing", "sydney"}

// extractLocation scans tokens for a preposition (in/at/for/of) followed by a
// token; if the token after that exists and is not a stop word it is appended
// to form a two-word location. Returns fallback when no pattern is found.
func extractLocation(query string, stopWords []string, fallback string) string {
	words := strings.Fields(query)
	for i, word := range words {
		if !isPreposition(word) || i+1 >= len(words) {
			continue
		}
		location := words[i+1]
		if i+2 < len(words) && !containsWord(stopWords, words[i+2]) {
			location += " " + words[i+2]
		}
		return location
	}
	return fallback
}

func isPreposition(w string) bool {
	switch w {
	case "in", "at", "for", "of":
		return true
	}
	return false
}

func containsWord(list []string, w string) bool {
	for _, s := range list {
		if s == w {
			return true
		}
	}
	return false
}

// weatherLocation resolves the city a weather query asks about, falling back
// to a scan for well-known city names and finally to the default location.
func weatherLocation(query string) string {
	loc := extractLocation(query, []string{"weather", "temperature", "forecast"}, defaultWeatherLocation)
	if loc != defaultWeatherLocation {
		return loc
	}
	for _, city := range knownCities {
		if strings.Contains(query, city) {
			return city
		}
	}
	return defaultWeatherLocation
}

func timeLocation(query string) string {
	return extractLocation(query, []string{"time", "date"}, defaultTimeLocation)
}

// extractCurrencyPair pulls a (base, target) pair out of a query. Explicit
// 3-letter codes win, in order of appearance; a single code becomes the
// target. With no codes at all, spoken currency names fill base then target
// in encounter order. Unfilled slots keep the defaults.
func extractCurrencyPair(query string) (base, target string) {
	base, target = defaultBaseCurrency, defaultTargetCurrency

	var codes []string
	for _, w := range strings.Fields(strings.ToUpper(query)) {
		if _, ok := currencySymbols[w]; ok {
			codes = append(codes, w)
		}
	}
	switch {
	case len(codes) >= 2:
		return codes[0], codes[1]
	case len(codes) == 1:
		return base, codes[0]
	}

	filled := 0
	for _, w := range strings.Fields(strings.ToLower(query)) {
		code, ok := currencyNames[w]
		if !ok {
			continue
		}
		if filled == 0 {
			base = code
			filled++
			continue
		}
		target = code
		break
	}
	return base, target
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// extractArithmetic strips punctuation, tokenizes, and collects numeric
// literals (digit tokens plus spelled-out zero..ten) and operator symbols in
// encounter order. Numbers beyond the first two and operators beyond the
// first are collected but silently ignored by the evaluator.
func extractArithmetic(query string) (nums []string, ops []string) {
	clean := nonWordRe.ReplaceAllString(strings.ToLower(query), " ")
	for _, w := range strings.Fields(clean) {
		if n, ok := numberWords[w]; ok {
			nums = append(nums, strconv.Itoa(n))
			continue
		}
		if op, ok := operatorWords[w]; ok {
			ops = append(ops, op)
			continue
		}
		if isDigits(w) {
			nums = append(nums, w)
		}
	}
	return nums, ops
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
