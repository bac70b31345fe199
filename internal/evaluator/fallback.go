package evaluator

import "strings"

// toolKeywords are the families of words that suggest the response at
// least talks about using tools, grouped per mock tool.
var toolKeywords = []string{
	"calculator", "calculate", "compute", "math",
	"weather", "temperature", "forecast",
	"currency", "convert", "exchange",
	"search", "web_search", "internet",
	"format_date", "date", "time",
	"create_user", "user", "account",
	"send_email", "email", "mail",
}

var structureKeywords = []string{"step", "1.", "2.", "first", "then", "next"}

var parameterKeywords = []string{"param", "input", "value", "result"}

var executionKeywords = []string{"result", "output", "="}

// FallbackScore awards heuristic partial credit for responses where
// no structured plan could be recovered. The text earns points for
// mentioning tools, showing step structure, naming parameters, and
// quoting execution output. A response needs 0.6 to pass.
func FallbackScore(text string) (bool, float64) {
	lower := strings.ToLower(text)

	containsAny := func(kws []string) bool {
		for _, kw := range kws {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}

	var score float64
	if containsAny(toolKeywords) {
		score += 0.4
	}
	if containsAny(structureKeywords) {
		score += 0.3
	}
	if containsAny(parameterKeywords) {
		score += 0.3
	}

	toolMentions := 0
	for _, kw := range toolKeywords {
		if strings.Contains(lower, kw) {
			toolMentions++
		}
	}
	if toolMentions > 1 {
		score += 0.2
	}
	if containsAny(executionKeywords) {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score >= 0.6, score
}
