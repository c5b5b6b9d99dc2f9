package command

import (
	"regexp"
	"strings"
)

// rule maps one pattern to an intent. Rules are tried in order and the first
// match wins.
type rule struct {
	pattern *regexp.Regexp
	build   func(m []string) Intent
}

const (
	botSuffix = `(?:@\w+)?`
	amount    = `(\d[\d.,]*)`
	// A name may span words when each but the last ends in a dot
	// ("rep. dominicana"). Combining marks cover decomposed accents.
	place = `((?:[\p{L}\p{M}]+\.\s*)*[\p{L}\p{M}.]+)`
)

var rules = []rule{
	{
		// "/start <payload>" is what deep links deliver.
		pattern: regexp.MustCompile(`(?i)^(?:/start` + botSuffix + `(?:\s.*)?|/?(?:start|help|ayuda|inicio|menu|hola|hello|hi|buenas)` + botSuffix + `[!.]?)$`),
		build:   func([]string) Intent { return Help{} },
	},
	{
		pattern: regexp.MustCompile(`(?i)^/?(paralelo|oficial|bcv)` + botSuffix + `(?:\s+` + amount + `)?$`),
		build: func(m []string) Intent {
			kind := KindParallel
			if strings.ToLower(m[1]) != "paralelo" {
				kind = KindOfficial
			}
			return LocalRate{Kind: kind, AmountText: m[2]}
		},
	},
	{
		pattern: regexp.MustCompile(`^` + place + `(?:\s*-\s*|\s+)` + place + `\s+` + amount + `$`),
		build: func(m []string) Intent {
			return Conversion{Origin: m[1], Destination: m[2], AmountText: m[3]}
		},
	},
}

// Parse classifies text. It never fails: text that matches no rule is
// Unrecognized.
func Parse(text string) Intent {
	text = strings.Join(strings.Fields(text), " ")
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(text); m != nil {
			return r.build(m)
		}
	}
	return Unrecognized{Text: text}
}

// Name is a short label for an intent, used in logs and metrics.
func Name(i Intent) string {
	switch i.(type) {
	case Help:
		return "help"
	case LocalRate:
		return "local-rate"
	case Conversion:
		return "conversion"
	default:
		return "unrecognized"
	}
}
