// Package translate formats user visible messages for the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK is the locale used when the host reports none.
const FALLBACK = "en-US"

var (
	mutex   sync.Mutex
	printer *message.Printer
)

func current() *message.Printer {
	mutex.Lock()
	defer mutex.Unlock()

	if printer == nil {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("bcpu: locale: %v", err)
		}
		printer = printerOf(locales)
	}

	return printer
}

func printerOf(locales []string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{FALLBACK}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// Use replaces the host locales. An empty list selects FALLBACK.
func Use(locales ...string) {
	mutex.Lock()
	defer mutex.Unlock()

	printer = printerOf(locales)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
