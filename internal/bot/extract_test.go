package bot

import (
	"reflect"
	"testing"
)

func TestWeatherLocation(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"what's the weather in paris", "paris"},
		{"weather in new york please", "new york"},
		{"forecast for berlin", "berlin"},
		// the token after the location is a trigger word and must not be
		// glued onto it
		{"what is the temperature in moscow temperature wise", "moscow"},
		{"tokyo weather", "tokyo"},
		{"is it sunny today", "London"},
	}
	for _, tc := range cases {
		if got := weatherLocation(tc.query); got != tc.want {
			t.Errorf("weatherLocation(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestTimeLocation(t *testing.T) {
	if got := timeLocation("what time is it in tokyo"); got != "tokyo" {
		t.Fatalf("timeLocation = %q, want %q", got, "tokyo")
	}
	if got := timeLocation("what time is it"); got != defaultTimeLocation {
		t.Fatalf("timeLocation = %q, want %q", got, defaultTimeLocation)
	}
	// "date" right after the location is a stop word
	if got := timeLocation("date in new york date"); got != "new york" {
		t.Fatalf("timeLocation = %q, want %q", got, "new york")
	}
}

func TestExtractCurrencyPair(t *testing.T) {
	cases := []struct {
		query      string
		base, want string
	}{
		{"convert usd to eur", "USD", "EUR"},
		{"convert USD to EUR", "USD", "EUR"},
		{"gbp jpy exchange rate", "GBP", "JPY"},
		{"exchange rate for gbp", "USD", "GBP"},
		{"dollar to euro", "USD", "EUR"},
		{"how many yen", "JPY", "EUR"},
		{"currency rates please", "USD", "EUR"},
	}
	for _, tc := range cases {
		base, target := extractCurrencyPair(tc.query)
		if base != tc.base || target != tc.want {
			t.Errorf("extractCurrencyPair(%q) = (%q, %q), want (%q, %q)",
				tc.query, base, target, tc.base, tc.want)
		}
	}
}

func TestExtractArithmetic(t *testing.T) {
	cases := []struct {
		query string
		nums  []string
		ops   []string
	}{
		{"what is five plus three", []string{"5", "3"}, []string{"+"}},
		{"divide ten by zero", []string{"10", "0"}, []string{"/"}},
		{"12 times 3", []string{"12", "3"}, []string{"*"}},
		{"subtract two from nine", []string{"2", "9"}, []string{"-"}},
		{"calculate 7 multiplied by 6!", []string{"7", "6"}, []string{"*"}},
		{"no math here", nil, nil},
	}
	for _, tc := range cases {
		nums, ops := extractArithmetic(tc.query)
		if !reflect.DeepEqual(nums, tc.nums) || !reflect.DeepEqual(ops, tc.ops) {
			t.Errorf("extractArithmetic(%q) = (%v, %v), want (%v, %v)",
				tc.query, nums, ops, tc.nums, tc.ops)
		}
	}
}
