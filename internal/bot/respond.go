package bot

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/suPer8Hu/supportbot/internal/fetch"
)

const (
	Name    = "SupportBot"
	Version = "2.0"
)

// WelcomeMessage is the canned first message a fresh conversation shows.
const WelcomeMessage = "Hello! I'm your AI customer support assistant. I can help you with:\n" +
	"- Account information and login issues\n" +
	"- Order status and tracking\n" +
	"- Payment and billing questions\n" +
	"- Weather information\n" +
	"- News updates\n" +
	"- Currency exchange rates\n" +
	"- Simple calculations\n" +
	"- Jokes and entertainment\n" +
	"- And much more!\n\n" +
	"How can I help you today?"

var faqResponses = map[Intent][]string{
	IntentGreeting: {
		"Hello! How can I help you today?",
		"Hi there! What can I assist you with?",
	},
	IntentFarewell: {
		"Goodbye! Have a wonderful day!",
		"See you later! Thanks for chatting.",
	},
	IntentHelp: {
		"I can help with:\n- Account and order issues\n- Weather information\n- News updates\n- Currency conversion\n- Calculations\n- Telling jokes\n- Time and date information\n- And much more!",
		"My capabilities include:\n- Answering FAQs\n- Providing weather forecasts\n- Sharing news headlines\n- Currency exchange rates\n- Basic calculations\n- Entertainment with jokes\n- Time and date queries",
	},
	IntentAccount: {
		"To access your account, please visit our website and click on 'Login'.",
		"You can reset your password by clicking on 'Forgot Password' on the login page.",
	},
	IntentOrder: {
		"To check your order status, I'll need your order number.",
		"You can track your order using the tracking number sent to your email.",
	},
	IntentPayment: {
		"We accept credit cards, PayPal, and bank transfers.",
		"For payment issues, please contact our billing department at billing@example.com.",
	},
	IntentDefault: {
		"I'm not sure I understand. Could you please rephrase your question?",
		"I don't have information about that yet. Would you like to speak with a human agent?",
		"Let me connect you with a customer service representative for further assistance.",
	},
}

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Why did the scarecrow win an award? Because he was outstanding in his field!",
	"What do you call a fake noodle? An impasta!",
	"How does a penguin build its house? Igloos it together!",
	"Why did the math book look so sad? Because it had too many problems!",
	"What do you call a bear with no teeth? A gummy bear!",
	"How do you organize a space party? You planet!",
	"What's the best thing about Switzerland? I don't know, but the flag is a big plus!",
	"Why don't eggs tell jokes? They'd crack each other up!",
	"What do you call a sleeping bull? A bulldozer!",
}

const thanksReply = "You're welcome! Is there anything else I can help you with?"

// newsCategoryRules is an elif chain from the top: first category whose
// trigger appears wins, otherwise "general".
var newsCategoryRules = []struct {
	category string
	triggers []string
}{
	{"sports", []string{"sports", "sport", "football", "basketball", "tennis"}},
	{"technology", []string{"technology", "tech", "computer", "software", "ai"}},
	{"business", []string{"business", "economy", "finance", "market", "stock"}},
	{"health", []string{"health", "medical", "medicine", "hospital", "doctor"}},
	{"entertainment", []string{"entertainment", "movie", "music", "celebrity", "film"}},
	{"science", []string{"science", "scientific", "research", "discovery"}},
}

// Responder turns a classified query into a reply string, consulting the
// fetch sources for the API intents.
type Responder struct {
	sources fetch.Sources

	// overridable in tests
	now  func() time.Time
	pick func(n int) int
}

func NewResponder(sources fetch.Sources) *Responder {
	return &Responder{
		sources: sources,
		now:     time.Now,
		pick:    rand.Intn,
	}
}

// Respond classifies text and produces exactly one reply plus the intent tag.
// It never fails: every fetch or calculation error is converted to in-band
// reply text.
func (r *Responder) Respond(ctx context.Context, text string) (string, Intent) {
	lower := strings.ToLower(text)
	intent := Classify(text)

	switch intent {
	case IntentJoke:
		return jokes[r.pick(len(jokes))], intent
	case IntentThanks:
		return thanksReply, intent
	case IntentWeather:
		return r.weatherReply(ctx, lower), intent
	case IntentNews:
		return r.newsReply(ctx, lower), intent
	case IntentCurrency:
		return r.currencyReply(ctx, lower), intent
	case IntentTime:
		return r.timeReply(lower), intent
	case IntentCalculation:
		return calculate(lower), intent
	}

	choices := faqResponses[intent]
	return choices[r.pick(len(choices))], intent
}

func (r *Responder) weatherReply(ctx context.Context, query string) string {
	location := weatherLocation(query)

	rep, err := r.sources.Weather.Current(ctx, location)
	if err != nil {
		if fetch.KindOf(err) == fetch.KindNoCredential {
			return "Please configure your OpenWeatherMap API key to get weather data."
		}
		return fmt.Sprintf("I couldn't fetch the weather data for %s. Please try again later or check if the city name is correct.", location)
	}

	iconURL := fmt.Sprintf("http://openweathermap.org/img/wn/%s@2x.png", rep.Icon)
	return fmt.Sprintf("Weather in %s, %s:\n"+
		"• Temperature: %s°C (feels like %s°C)\n"+
		"• Conditions: %s\n"+
		"• Humidity: %d%%\n"+
		"• Wind: %s m/s\n"+
		"• Icon: %s",
		rep.City, rep.Country,
		rep.Temp, rep.FeelsLike,
		capitalize(rep.Description),
		rep.Humidity,
		rep.WindSpeed,
		iconURL)
}

func (r *Responder) newsReply(ctx context.Context, query string) string {
	category := newsCategory(query)

	articles, err := r.sources.News.TopHeadlines(ctx, category)
	if err != nil {
		if fetch.KindOf(err) == fetch.KindNoCredential {
			return "Please configure your NewsAPI key to get news data."
		}
		return "I couldn't fetch the latest news. Please check your internet connection or try again later."
	}
	if len(articles) == 0 {
		return fmt.Sprintf("No %s news found right now. Please try another category.", category)
	}

	var lines []string
	for i, a := range articles {
		if i >= 3 {
			break
		}
		title := a.Title
		// character count, not bytes: multibyte titles must not be cut short
		// or split mid-rune
		if r := []rune(title); len(r) > 100 {
			title = string(r[:100]) + "..."
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, title, a.Source))
	}
	return fmt.Sprintf("Here are the latest %s news headlines:\n", category) + strings.Join(lines, "\n")
}

func newsCategory(query string) string {
	for _, rule := range newsCategoryRules {
		if containsAny(query, rule.triggers) {
			return rule.category
		}
	}
	return "general"
}

func (r *Responder) currencyReply(ctx context.Context, query string) string {
	base, target := extractCurrencyPair(query)

	rate, err := r.sources.Exchange.PairRate(ctx, base, target)
	if err != nil {
		switch fetch.KindOf(err) {
		case fetch.KindNoCredential:
			return "Please configure your ExchangeRate API key to get currency data."
		case fetch.KindUpstream:
			return "Sorry, I couldn't retrieve the exchange rate at the moment."
		}
		return "I couldn't fetch the exchange rate. Please check your internet connection or try again later."
	}

	return fmt.Sprintf("Exchange Rate:\n"+
		"• %s (%s) to %s (%s)\n"+
		"• Rate: 1 %s = %.4f %s\n"+
		"• Last updated: %s",
		base, currencySymbol(base), target, currencySymbol(target),
		base, rate.Rate, target,
		rate.LastUpdated)
}

// currencySymbol falls back to the code itself for codes outside the table.
func currencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}

func (r *Responder) timeReply(query string) string {
	location := timeLocation(query)

	tzHint := ""
	lowerLoc := strings.ToLower(location)
	switch {
	case strings.Contains(lowerLoc, "london"):
		tzHint = " (GMT+0/BST)"
	case strings.Contains(lowerLoc, "new york"):
		tzHint = " (EST/EDT)"
	case strings.Contains(lowerLoc, "tokyo"):
		tzHint = " (JST)"
	}

	now := r.now()
	return fmt.Sprintf("Current time in %s%s:\n"+
		"• Time: %s\n"+
		"• Date: %s\n"+
		"• UTC: %s",
		titleCase(location), tzHint,
		now.Format("15:04:05"),
		now.Format("Monday, January 02, 2006"),
		now.UTC().Format("15:04:05"))
}

const calcCouldNotUnderstand = "I couldn't understand the calculation request. Please try phrasing it differently."
const calcDivisionByZero = "Error: Division by zero is not allowed."

var embeddedExprRe = regexp.MustCompile(`(\d+\.?\d*)([+\-*/])(\d+\.?\d*)`)

// calculate evaluates a constrained grammar only: one number, one operator,
// one number. No general expression evaluation happens here.
func calculate(query string) string {
	nums, ops := extractArithmetic(query)
	if len(nums) >= 2 && len(ops) >= 1 {
		return evalBinary(nums[0], ops[0], nums[1])
	}

	if strings.Contains(query, "square root of") {
		if reply, ok := squareRoot(query); ok {
			return reply
		}
	}

	if strings.Contains(query, "power") || strings.Contains(query, "^") {
		if reply, ok := powerOf(query); ok {
			return reply
		}
	}

	if m := embeddedExprRe.FindStringSubmatch(query); m != nil {
		return evalEmbedded(m[1], m[2], m[3])
	}

	return calcCouldNotUnderstand
}

// evalBinary operates on the integer literals the extractor produced. The
// three ring operators stay in integer arithmetic; division promotes to
// float, matching the rendering of the original assistant.
func evalBinary(aStr, op, bStr string) string {
	a, errA := strconv.Atoi(aStr)
	b, errB := strconv.Atoi(bStr)
	if errA != nil || errB != nil {
		return calcCouldNotUnderstand
	}

	expr := fmt.Sprintf("%d %s %d", a, op, b)
	switch op {
	case "+":
		return fmt.Sprintf("Calculation: %s = %d", expr, a+b)
	case "-":
		return fmt.Sprintf("Calculation: %s = %d", expr, a-b)
	case "*":
		return fmt.Sprintf("Calculation: %s = %d", expr, a*b)
	case "/":
		if b == 0 {
			return calcDivisionByZero
		}
		return fmt.Sprintf("Calculation: %s = %s", expr, formatFloat(float64(a)/float64(b)))
	}
	return calcCouldNotUnderstand
}

func squareRoot(query string) (string, bool) {
	clean := nonWordRe.ReplaceAllString(query, " ")
	for _, w := range strings.Fields(clean) {
		if !isDigits(w) {
			continue
		}
		num, err := strconv.ParseFloat(w, 64)
		if err != nil || num < 0 {
			return "", false
		}
		return fmt.Sprintf("Square root of %s is %.4f", formatFloat(num), math.Sqrt(num)), true
	}
	return "", false
}

func powerOf(query string) (string, bool) {
	clean := nonWordRe.ReplaceAllString(query, " ")
	var nums []float64
	for _, w := range strings.Fields(clean) {
		if isDigits(w) {
			n, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return "", false
			}
			nums = append(nums, n)
		}
	}
	if len(nums) < 2 {
		return "", false
	}
	return fmt.Sprintf("%s to the power of %s is %.4f",
		formatFloat(nums[0]), formatFloat(nums[1]), math.Pow(nums[0], nums[1])), true
}

// evalEmbedded handles a number-operator-number pattern found directly in the
// raw text, covering decimals the word scan misses.
func evalEmbedded(aStr, op, bStr string) string {
	expr := aStr + op + bStr
	if !strings.Contains(aStr, ".") && !strings.Contains(bStr, ".") && op != "/" {
		a, errA := strconv.Atoi(aStr)
		b, errB := strconv.Atoi(bStr)
		if errA != nil || errB != nil {
			return calcCouldNotUnderstand
		}
		var result int
		switch op {
		case "+":
			result = a + b
		case "-":
			result = a - b
		case "*":
			result = a * b
		}
		return fmt.Sprintf("Calculation: %s = %d", expr, result)
	}

	a, errA := strconv.ParseFloat(aStr, 64)
	b, errB := strconv.ParseFloat(bStr, 64)
	if errA != nil || errB != nil {
		return calcCouldNotUnderstand
	}
	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return calcDivisionByZero
		}
		result = a / b
	}
	return fmt.Sprintf("Calculation: %s = %s", expr, formatFloat(result))
}

// formatFloat renders a float with a trailing .0 on integral values, so
// "Square root of 16.0 is 4.0000" keeps its historical shape.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
