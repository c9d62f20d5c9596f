// Package translate formats the VM's user-facing messages for the host
// locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	mutex   sync.Mutex
	printer *message.Printer
	tag     language.Tag
)

// hostLanguages lists the host's preferred locales, falling back to en-US.
func hostLanguages() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("lc3: locale: %v", err)
	}
	if len(locales) == 0 {
		return []string{"en-US"}
	}
	return locales
}

func current() *message.Printer {
	mutex.Lock()
	defer mutex.Unlock()
	if printer == nil {
		use(message.MatchLanguage(hostLanguages()...))
	}
	return printer
}

func use(t language.Tag) {
	tag = t
	printer = message.NewPrinter(t)
}

// SetLanguage overrides the host locale with the first parsable BCP 47 tag.
func SetLanguage(tags ...string) error {
	var firstErr error
	for _, s := range tags {
		t, err := language.Parse(s)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		mutex.Lock()
		use(t)
		mutex.Unlock()
		return nil
	}
	return firstErr
}

// Language reports the tag messages are formatted for.
func Language() language.Tag {
	current()
	mutex.Lock()
	defer mutex.Unlock()
	return tag
}

// From formats an en-US Sprintf() style message for the active language.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
