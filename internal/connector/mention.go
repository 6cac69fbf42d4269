package connector

import "regexp"

// Detector decides whether a group message addresses the bot by nickname
// and strips the address form from the text. Three surface forms are
// recognized, checked in order, at most one applied:
//
//	leading:  "bot: hello", "@bot, hello"
//	trailing: "hello bot", "thanks @bot!"
//	embedded: "hello, @bot, how are you"
//
// Matching is case-sensitive and whitespace-tolerant around punctuation.
type Detector struct {
	nickname string
	leading  *regexp.Regexp
	trailing *regexp.Regexp
	embedded *regexp.Regexp
}

// NewDetector compiles the mention patterns for the given nickname.
func NewDetector(nickname string) *Detector {
	nick := regexp.QuoteMeta(nickname)
	return &Detector{
		nickname: nickname,
		// optional @, nickname, one of ": , -", optional whitespace
		leading: regexp.MustCompile(`^@?` + nick + `\s*[:,\-]\s*`),
		// optional comma/space run, optional @, nickname, optional
		// terminal punctuation; anchored so "abbot" does not match "bot"
		trailing: regexp.MustCompile(`(?:^|[\s,])[\s,]*@?` + nick + `\s*[.!?]?$`),
		// vocative set off by commas anywhere in the text
		embedded: regexp.MustCompile(`,\s*@` + nick + `\s*,`),
	}
}

// Nickname returns the nickname the detector was compiled for.
func (d *Detector) Nickname() string {
	return d.nickname
}

// Detect reports whether text addresses the bot and returns the text with
// exactly the matched address span removed. When no form matches, text is
// returned unchanged with addressed=false.
func (d *Detector) Detect(text string) (stripped string, addressed bool) {
	for _, re := range []*regexp.Regexp{d.leading, d.trailing, d.embedded} {
		if loc := re.FindStringIndex(text); loc != nil {
			return text[:loc[0]] + text[loc[1]:], true
		}
	}
	return text, false
}
