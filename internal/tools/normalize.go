package tools

import "strings"

// Models name the same tool a dozen different ways, so lookup goes
// through two static alias tables: one for tool names, one for
// parameter keys. Both are case-insensitive, treat '-' and ' ' as '_',
// and pass unknown identifiers through unchanged. Canonical names never
// appear as alias keys, which keeps normalization idempotent.

// toolNameAliases folds observed tool-name variations onto the
// canonical registry names. Plausible-but-unimplemented verbs (flight
// booking, scraping, translation, generic API calls) are deliberately
// mapped onto the nearest mock so those chains still execute.
var toolNameAliases = map[string]string{
	// Web search variations.
	"search_web":      "web_search",
	"search":          "web_search",
	"websearch":       "web_search",
	"internet_search": "web_search",
	"google":          "web_search",
	"bing":            "web_search",

	// Weather variations.
	"weather":             "get_weather",
	"getweather":          "get_weather",
	"check_weather":       "get_weather",
	"fetch_weather":       "get_weather",
	"get_current_weather": "get_weather",
	"current_weather":     "get_weather",
	"weather_lookup":      "get_weather",
	"compare_weather":     "get_weather",
	"weather_comparison":  "get_weather",

	// Currency variations.
	"currency":          "convert_currency",
	"currency_convert":  "convert_currency",
	"exchange":          "convert_currency",
	"convertcurrency":   "convert_currency",
	"currency_exchange": "convert_currency",
	"forex":             "convert_currency",

	// Calculator variations, including compound-interest phrasing.
	"calc":                        "calculator",
	"math":                        "calculator",
	"compute":                     "calculator",
	"calculate":                   "calculator",
	"math_calculator":             "calculator",
	"add":                         "calculator",
	"subtract":                    "calculator",
	"multiply":                    "calculator",
	"divide":                      "calculator",
	"arithmetic":                  "calculator",
	"math_operation":              "calculator",
	"calculate_compound_interest": "calculator",
	"compound_interest":           "calculator",
	"interest_calculator":         "calculator",
	"financial_calc":              "calculator",

	// Date variations.
	"date":         "format_date",
	"date_format":  "format_date",
	"formatdate":   "format_date",
	"get_date":     "format_date",
	"current_date": "format_date",
	"today":        "format_date",
	"datetime":     "format_date",

	// User variations.
	"user":          "create_user",
	"createuser":    "create_user",
	"new_user":      "create_user",
	"add_user":      "create_user",
	"register_user": "create_user",
	"signup":        "create_user",

	// Email variations.
	"email":         "send_email",
	"sendemail":     "send_email",
	"mail":          "send_email",
	"send_mail":     "send_email",
	"compose_email": "send_email",
	"send_message":  "send_email",

	// Out-of-domain verbs folded onto the nearest mock.
	"search_flights":   "web_search",
	"flight_search":    "web_search",
	"book_flight":      "web_search",
	"find_flights":     "web_search",
	"book_hotel":       "web_search",
	"hotel_search":     "web_search",
	"find_hotel":       "web_search",
	"reserve_hotel":    "web_search",
	"schedule_ride":    "web_search",
	"uber":             "web_search",
	"lyft":             "web_search",
	"taxi":             "web_search",
	"book_ride":        "web_search",
	"extract_content":  "web_search",
	"scrape":           "web_search",
	"get_content":      "web_search",
	"read_page":        "web_search",
	"summarize":        "web_search",
	"summarise":        "web_search",
	"summary":          "web_search",
	"tldr":             "web_search",
	"translate":        "web_search",
	"translation":      "web_search",
	"translate_text":   "web_search",
	"recommend_clothing": "web_search",
	"clothing":         "web_search",
	"outfit":           "web_search",
	"create_post":      "create_user",
	"post":             "create_user",
	"new_post":         "create_user",
	"publish":          "create_user",
	"add_comment":      "send_email",
	"comment":          "send_email",
	"reply":            "send_email",
	"compare":          "calculator",
	"comparison":       "calculator",
	"diff":             "calculator",
	"estimate_cost":    "calculator",
	"price":            "calculator",
	"cost":             "calculator",
	"process_data":     "calculator",
	"process":          "calculator",
	"transform":        "calculator",
	"error":            "calculator",

	// Generic API-call fallbacks.
	"call_api":         "web_search",
	"api_call":         "web_search",
	"premium_api_call": "web_search",
	"free_api_call":    "web_search",
	"api":              "web_search",
}

// paramKeyAliases folds parameter-key synonyms onto each tool's
// canonical field names.
var paramKeyAliases = map[string]string{
	// Location → city.
	"location": "city",
	"loc":      "city",
	"place":    "city",
	"area":     "city",

	// Username → name.
	"username":  "name",
	"user_name": "name",
	"user":      "name",
	"full_name": "name",
	"id":        "name",

	// Query aliases.
	"q":       "query",
	"search":  "query",
	"topic":   "query",
	"term":    "query",
	"keyword": "query",

	// Amount variations.
	"value":  "amount",
	"number": "amount",
	"num":    "amount",

	// Calculator operation variations.
	"op":       "operation",
	"operator": "operation",
	"action":   "operation",

	// Compound-interest synonyms.
	"interest_rate": "rate",
	"rate_percent":  "rate",
	"percentage":    "rate",
	"time":          "years",
	"duration":      "years",
	"period":        "years",
	"initial":       "principal",
	"base":          "principal",
	"start_amount":  "principal",
}

// canonicalize lower-cases an identifier and maps separators to '_'.
func canonicalize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// NormalizeToolName maps a free-form tool name onto its canonical
// registry name. Unknown names pass through in canonical form.
func NormalizeToolName(name string) string {
	c := canonicalize(name)
	if canonical, ok := toolNameAliases[c]; ok {
		return canonical
	}
	return c
}

// NormalizeParamKey maps a parameter key onto its canonical field
// name. Unknown keys pass through unchanged.
func NormalizeParamKey(key string) string {
	if canonical, ok := paramKeyAliases[canonicalize(key)]; ok {
		return canonical
	}
	return key
}

// NormalizeParams rewrites every object key in a parameter value,
// recursing into nested objects and arrays. Non-container values are
// returned as-is.
func NormalizeParams(params any) any {
	switch v := params.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[NormalizeParamKey(key)] = NormalizeParams(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = NormalizeParams(val)
		}
		return out
	default:
		return params
	}
}
