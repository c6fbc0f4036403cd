package driver

// Translator rewrites a matched placeholder into the dialect's
// positional marker.
type Translator interface {
	Translate(matched string) string
}

// TranslateFunc is a function that implements Translator.
type TranslateFunc func(matched string) string

// Translate implements the Translator interface.
func (f TranslateFunc) Translate(matched string) string {
	return f(matched)
}
