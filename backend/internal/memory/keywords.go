package memory

import "strings"

// promptTrigger links a group of trigger substrings to the fact keys and
// fact type worth retrieving when any of them appears in a prompt. The
// same table drives both keyword and type derivation so the two stay in
// sync. Triggers cover en-US and pt-BR vocabulary.
type promptTrigger struct {
	words    []string
	keys     []string
	factType FactType
}

var promptTriggers = []promptTrigger{
	{
		words:    []string{"dog", "cat", "pet", "animal", "cachorro", "gato"},
		keys:     []string{"dog_name", "cat_name", "pet_name", "cachorro_name", "gato_name", "animal_name"},
		factType: FactTypePet,
	},
	{
		words:    []string{"name", "nome"},
		keys:     []string{KeyName},
		factType: FactTypePersonal,
	},
	{
		words:    []string{"live", "from", "location", "moro", "sou de", "local"},
		keys:     []string{KeyHomeLocation},
		factType: FactTypeLocation,
	},
	{
		words:    []string{"work", "job", "company", "trabalho", "emprego", "empresa"},
		keys:     []string{KeyCompany},
		factType: FactTypeWork,
	},
	{
		words:    []string{"like", "prefer", "enjoy", "gosto", "adoro", "curto", "prefiro"},
		keys:     []string{KeyLikes},
		factType: FactTypePreference,
	},
}

// KeywordsFromPrompt derives the fact keys a prompt is likely asking
// about. Matching is substring-based against the lower-cased prompt, not
// token-based.
func KeywordsFromPrompt(prompt string) []string {
	lowerPrompt := strings.ToLower(prompt)
	var keywords []string
	for _, t := range promptTriggers {
		if t.matches(lowerPrompt) {
			keywords = append(keywords, t.keys...)
		}
	}
	return keywords
}

// TypesFromPrompt derives the fact types a prompt is likely asking about,
// using the same trigger groups as KeywordsFromPrompt.
func TypesFromPrompt(prompt string) []FactType {
	lowerPrompt := strings.ToLower(prompt)
	var types []FactType
	for _, t := range promptTriggers {
		if t.matches(lowerPrompt) {
			types = append(types, t.factType)
		}
	}
	return types
}

func (t promptTrigger) matches(lowerPrompt string) bool {
	for _, w := range t.words {
		if strings.Contains(lowerPrompt, w) {
			return true
		}
	}
	return false
}
