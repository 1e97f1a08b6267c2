package enricher

import (
	"fmt"
	"regexp"
	"strings"
)

// questionPhrases mark a prompt as asking for exactly one stored fact,
// answerable without invoking the LLM.
var questionPhrases = []string{
	"what is my",
	"what's my",
	"who is my",
	"where do i live",
	"where do i work",
	"what do i like",
}

var (
	dogNameRe  = regexp.MustCompile(`(?i)your dog's name is (\w+)`)
	catNameRe  = regexp.MustCompile(`(?i)your cat's name is (\w+)`)
	userNameRe = regexp.MustCompile(`(?i)your name is (\w+)`)
	locationRe = regexp.MustCompile(`(?i)you live in ([^.]+)`)
	workRe     = regexp.MustCompile(`(?i)you work at ([^.]+)`)
	likesRe    = regexp.MustCompile(`(?i)you like ([^.]+)`)
)

func isDirectQuestion(prompt string) bool {
	lowerPrompt := strings.ToLower(prompt)
	for _, phrase := range questionPhrases {
		if strings.Contains(lowerPrompt, phrase) {
			return true
		}
	}
	return false
}

// directAnswer tries to answer the question from the already-built context
// string. ok is false when the context holds no matching clause, in which
// case the caller falls back to context-prefixing the prompt.
func directAnswer(prompt, context string) (string, bool) {
	lowerPrompt := strings.ToLower(prompt)

	if strings.Contains(lowerPrompt, "dog") && strings.Contains(lowerPrompt, "name") {
		if m := dogNameRe.FindStringSubmatch(context); m != nil {
			return fmt.Sprintf("Your dog's name is %s.", m[1]), true
		}
	}

	if strings.Contains(lowerPrompt, "cat") && strings.Contains(lowerPrompt, "name") {
		if m := catNameRe.FindStringSubmatch(context); m != nil {
			return fmt.Sprintf("Your cat's name is %s.", m[1]), true
		}
	}

	if strings.Contains(lowerPrompt, "name") &&
		!strings.Contains(lowerPrompt, "dog") && !strings.Contains(lowerPrompt, "cat") {
		if m := userNameRe.FindStringSubmatch(context); m != nil {
			return fmt.Sprintf("Your name is %s.", m[1]), true
		}
	}

	if strings.Contains(lowerPrompt, "live") || strings.Contains(lowerPrompt, "from") {
		if m := locationRe.FindStringSubmatch(context); m != nil {
			return fmt.Sprintf("You live in %s.", m[1]), true
		}
	}

	if strings.Contains(lowerPrompt, "work") {
		if m := workRe.FindStringSubmatch(context); m != nil {
			return fmt.Sprintf("You work at %s.", m[1]), true
		}
	}

	if strings.Contains(lowerPrompt, "like") || strings.Contains(lowerPrompt, "prefer") {
		if m := likesRe.FindStringSubmatch(context); m != nil {
			return fmt.Sprintf("You like %s.", m[1]), true
		}
	}

	return "", false
}
