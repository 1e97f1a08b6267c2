package memory

import (
	"regexp"
	"strings"
)

// locale selects which copy of the sentence a pattern runs against.
// English patterns see the original sentence (their triggers are
// case-insensitive but captures keep source case); Portuguese patterns see
// a fully lower-cased copy, so their captured values come out lower-case.
type locale int

const (
	localeEN locale = iota
	localePT
)

// pattern is one extraction rule. Patterns are pure data so adding a
// locale means adding table rows, not branches.
type pattern struct {
	re       *regexp.Regexp
	factType FactType
	key      string          // fixed key; empty when petKey is set
	petKey   bool            // key is "<capture1>_name", value is capture 2
	locale   locale
	exclude  map[string]bool // drop captures in this set (lower-cased)
}

// The five pattern families, English then Portuguese, in the order their
// facts are persisted. All families run unconditionally and globally, so
// one sentence can yield several facts, including several of the same type.
var patterns = []pattern{
	// Pet name: "my dog's name is Duke", "my cat is named Whiskers",
	// "meu cachorro se chama Rex"
	{
		re:       regexp.MustCompile(`(?i)my\s+(\w+)(?:'s|\s+is|\s+named)\s+(?:name\s+is\s+|named\s+|called\s+)?(\w+)`),
		factType: FactTypePet,
		petKey:   true,
		locale:   localeEN,
	},
	{
		re:       regexp.MustCompile(`(?i)(?:meu|minha)\s+(\w+)\s+(?:se chama|chama-se|é chamado|é chamada|é)\s+([a-zA-ZÀ-ú]+)`),
		factType: FactTypePet,
		petKey:   true,
		locale:   localePT,
	},
	// Location: "I live in New York", "sou de Lisboa"
	{
		re:       regexp.MustCompile(`(?i)(?:i\s+live\s+in|i'm\s+from|i\s+am\s+from)\s+([a-zA-Z\s,]+)`),
		factType: FactTypeLocation,
		key:      KeyHomeLocation,
		locale:   localeEN,
	},
	{
		re:       regexp.MustCompile(`(?i)(?:eu\s+moro\s+em|sou\s+de|eu\s+sou\s+de)\s+([a-zA-ZÀ-ú\s,]+)`),
		factType: FactTypeLocation,
		key:      KeyHomeLocation,
		locale:   localePT,
	},
	// Work: "I work at Acme", "trabalho na Petrobras"
	{
		re:       regexp.MustCompile(`(?i)(?:i\s+work\s+(?:at|for)|i'm\s+employed\s+(?:at|by))\s+([a-zA-Z\s,&]+)`),
		factType: FactTypeWork,
		key:      KeyCompany,
		locale:   localeEN,
	},
	{
		re:       regexp.MustCompile(`(?i)(?:eu\s+trabalho\s+na|eu\s+trabalho\s+no|trabalho\s+na|trabalho\s+no|sou\s+empregado\s+na|sou\s+empregado\s+no)\s+([a-zA-ZÀ-ú\s,&]+)`),
		factType: FactTypeWork,
		key:      KeyCompany,
		locale:   localePT,
	},
	// Personal name: "My name is Alice", "me chamo Maria". The exclusion
	// sets guard against the lexical overlap with the location and work
	// families ("I'm from ...", "eu sou de ..."); their coverage is a
	// known heuristic, not full disambiguation.
	{
		re:       regexp.MustCompile(`(?i)(?:my\s+name\s+is|i'm|i\s+am)\s+([a-zA-Z]+)`),
		factType: FactTypePersonal,
		key:      KeyName,
		locale:   localeEN,
		exclude:  wordSet("from", "at", "in", "working", "living"),
	},
	{
		re:       regexp.MustCompile(`(?i)(?:meu\s+nome\s+é|eu\s+sou|me\s+chamo)\s+([a-zA-ZÀ-ú]+)`),
		factType: FactTypePersonal,
		key:      KeyName,
		locale:   localePT,
		exclude:  wordSet("de", "em", "na", "no", "trabalhando", "morando"),
	},
	// Preference: "I like hiking", "eu gosto de churrasco"
	{
		re:       regexp.MustCompile(`(?i)i\s+(?:like|love|enjoy|prefer)\s+([a-zA-Z\s,]+)`),
		factType: FactTypePreference,
		key:      KeyLikes,
		locale:   localeEN,
	},
	{
		re:       regexp.MustCompile(`(?i)(?:eu\s+gosto\s+de|adoro|eu\s+prefiro|curto)\s+([a-zA-ZÀ-ú\s,]+)`),
		factType: FactTypePreference,
		key:      KeyLikes,
		locale:   localePT,
	},
}

// Extract turns one sentence into zero or more facts. It never fails;
// sentences that match nothing yield an empty slice. UserID and Timestamp
// are left for the store to fill in at persistence time.
func Extract(sentence string) []Fact {
	lowerSentence := strings.ToLower(sentence)
	var facts []Fact

	for _, p := range patterns {
		input := sentence
		if p.locale == localePT {
			input = lowerSentence
		}

		for _, match := range p.re.FindAllStringSubmatch(input, -1) {
			fact, ok := p.build(match)
			if ok {
				facts = append(facts, fact)
			}
		}
	}

	return facts
}

func (p pattern) build(match []string) (Fact, bool) {
	if p.petKey {
		if match[1] == "" || match[2] == "" {
			return Fact{}, false
		}
		return Fact{
			Type:  p.factType,
			Key:   PetNameKey(match[1]),
			Value: match[2],
		}, true
	}

	value := strings.TrimSpace(match[1])
	if value == "" {
		return Fact{}, false
	}
	if p.exclude != nil && p.exclude[strings.ToLower(value)] {
		return Fact{}, false
	}
	return Fact{
		Type:  p.factType,
		Key:   p.key,
		Value: value,
	}, true
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
