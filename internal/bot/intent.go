package bot

// Intent is the classified purpose of a user message. Exactly one intent is
// chosen per message.
type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentFarewell    Intent = "farewell"
	IntentHelp        Intent = "help"
	IntentAccount     Intent = "account"
	IntentOrder       Intent = "order"
	IntentPayment     Intent = "payment"
	IntentJoke        Intent = "joke"
	IntentThanks      Intent = "thanks"
	IntentWeather     Intent = "weather"
	IntentNews        Intent = "news"
	IntentCurrency    Intent = "currency"
	IntentTime        Intent = "time"
	IntentCalculation Intent = "calculation"
	IntentDefault     Intent = "default"
)

// KeywordRule binds an intent to its trigger substrings. Rules are evaluated
// in slice order and the first rule with any trigger present in the lowercased
// input wins, so the order of faqRules and apiRules is load-bearing.
type KeywordRule struct {
	Intent   Intent
	Triggers []string
}

// faqRules covers the canned-answer intents, tested before any API intent.
var faqRules = []KeywordRule{
	{IntentGreeting, []string{"hello", "hi", "hey", "greetings", "hola"}},
	{IntentFarewell, []string{"bye", "goodbye", "see you", "farewell", "adios"}},
	{IntentHelp, []string{"help", "what can you do", "support", "features", "capabilities"}},
	{IntentAccount, []string{"account", "login", "password", "sign in", "register"}},
	{IntentOrder, []string{"order", "track", "delivery", "shipment", "package"}},
	{IntentPayment, []string{"payment", "pay", "credit card", "bill", "invoice", "refund"}},
	{IntentJoke, []string{"joke", "funny", "laugh", "humor"}},
	{IntentThanks, []string{"thank", "thanks", "appreciate"}},
}

// apiRules covers the intents that need a parameter extractor and, for
// weather/news/currency, an external fetch.
var apiRules = []KeywordRule{
	{IntentWeather, []string{"weather", "temperature", "forecast", "rain", "sunny", "cloud"}},
	{IntentNews, []string{"news", "headlines", "latest", "update", "headline"}},
	{IntentCurrency, []string{"exchange", "currency", "convert", "dollar", "euro", "pound", "yen"}},
	{IntentTime, []string{"time", "date", "clock", "calendar", "day"}},
	{IntentCalculation, []string{
		// "times" is absent on purpose: it contains the time trigger and
		// would never be reached.
		"calculate", "math", "add", "subtract", "multiply", "divide", "square", "root",
		"plus", "minus", "divided", "power", "^",
	}},
}

// currencySymbols maps supported 3-letter codes to display symbols. Codes not
// in this table render as their own symbol.
var currencySymbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥",
	"CAD": "C$", "AUD": "A$", "INR": "₹", "CNY": "¥",
	"CHF": "Fr", "RUB": "₽", "BRL": "R$", "MXN": "$",
}

// currencyNames maps spoken currency names to codes for queries with no
// explicit code.
var currencyNames = map[string]string{
	"dollar": "USD", "euro": "EUR", "pound": "GBP", "yen": "JPY",
	"yuan": "CNY", "rupee": "INR", "ruble": "RUB", "franc": "CHF",
	"real": "BRL", "peso": "MXN",
}

// numberWords and operatorWords translate spelled-out arithmetic into
// literals. The filler word "by" maps to nothing and is dropped during the
// scan.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10,
}

var operatorWords = map[string]string{
	"plus": "+", "add": "+",
	"minus": "-", "subtract": "-",
	"times": "*", "multiplied": "*", "multiply": "*",
	"divided": "/", "divide": "/", "over": "/",
}
