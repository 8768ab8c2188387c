package engine

import "strings"

// Choice is one labeled option offered to the player.
type Choice struct {
	Token string `yaml:"token"`
	Label string `yaml:"label"`
}

// Intent is a parsed choice token: a verb and an optional argument,
// written "verb" or "verb:arg".
type Intent struct {
	Verb string
	Arg  string
}

// Intent verbs.
const (
	VerbGo       = "go"
	VerbLook     = "look"
	VerbQuit     = "quit"
	VerbRestart  = "restart"
	VerbAllocate = "allocate"
	VerbSearch   = "search"
	VerbTalk     = "talk"
	VerbAttack   = "attack"
	VerbEscape   = "escape"
	VerbTake     = "take"
	VerbFight    = "fight"
	VerbDrink    = "drink"
	VerbStrike   = "strike"
	VerbAbility  = "ability"
)

// ParseIntent splits a token into verb and argument.
func ParseIntent(token string) Intent {
	token = strings.ToLower(strings.TrimSpace(token))
	verb, arg, _ := strings.Cut(token, ":")
	return Intent{Verb: verb, Arg: arg}
}

// Token is the canonical text form of the intent.
func (i Intent) Token() string {
	if i.Arg == "" {
		return i.Verb
	}
	return i.Verb + ":" + i.Arg
}

func token(verb, arg string) string {
	return Intent{Verb: verb, Arg: arg}.Token()
}

// offered reports whether token is among choices.
func offered(choices []Choice, tok string) bool {
	for _, c := range choices {
		if c.Token == tok {
			return true
		}
	}
	return false
}
