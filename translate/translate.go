// Package translate formats user-facing messages for the detected locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DEFAULT_LANGUAGE is used when no locale can be detected.
const DEFAULT_LANGUAGE = "en-US"

var (
	printer *message.Printer
	current language.Tag
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("rv32i: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the message printer for the best match among the
// language tags. With no tags, DEFAULT_LANGUAGE is used.
func SetLanguage(tags ...string) {
	if len(tags) == 0 {
		tags = []string{DEFAULT_LANGUAGE}
	}

	current = message.MatchLanguage(tags...)
	printer = message.NewPrinter(current)
}

// Language returns the tag of the active printer.
func Language() language.Tag {
	return current
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
