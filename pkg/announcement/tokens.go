package announcement

// Token is one prerecorded audio clip reference within an announcement,
// with an optional silence inserted before it starts.
type Token struct {
	Clip    string
	DelayMs int
}

func clip(id string) Token {
	return Token{Clip: id}
}

func delayed(id string, delayMs int) Token {
	return Token{Clip: id, DelayMs: delayMs}
}

// Clips flattens a token list to its clip ids, mostly for logs and tests.
func Clips(tokens []Token) []string {
	ids := make([]string, len(tokens))
	for i, t := range tokens {
		ids[i] = t.Clip
	}

	return ids
}

// PluraliseOptions control how a spoken list is joined. The delay values are
// voice timing parameters, not semantic content, and differ per clause.
type PluraliseOptions struct {
	// Prefix is prepended to every item except the last; FinalPrefix to the
	// last. Leave both empty when items are already complete clip ids.
	Prefix      string
	FinalPrefix string

	// AndClip is the conjunction inserted before the final item of a list
	// with two or more entries. Defaults to "m.and".
	AndClip string

	FirstItemDelayMs  int
	BeforeItemDelayMs int
	BeforeAndDelayMs  int
	AfterAndDelayMs   int
}

// Pluralise renders a list of items as tokens, inserting the conjunction
// before the final item when the list has at least two entries. A single
// item list never receives a conjunction.
func Pluralise(items []string, opts PluraliseOptions) []Token {
	if len(items) == 0 {
		return nil
	}

	andClip := opts.AndClip
	if andClip == "" {
		andClip = "m.and"
	}

	if len(items) == 1 {
		return []Token{delayed(opts.FinalPrefix+items[0], opts.FirstItemDelayMs)}
	}

	var tokens []Token
	tokens = append(tokens, delayed(opts.Prefix+items[0], opts.FirstItemDelayMs))

	for _, item := range items[1 : len(items)-1] {
		tokens = append(tokens, delayed(opts.Prefix+item, opts.BeforeItemDelayMs))
	}

	tokens = append(tokens,
		delayed(andClip, opts.BeforeAndDelayMs),
		delayed(opts.FinalPrefix+items[len(items)-1], opts.AfterAndDelayMs),
	)

	return tokens
}
