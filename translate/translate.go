// Package translate localizes the messages of the yahvm tools.
package translate

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US,en-GB github.com/yahvm/yahvm/cmd/yahvm

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

func defaultPrinter() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("yahvm: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{"en-US"}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// Use replaces the message printer with one for the given language tags.
func Use(tags ...string) {
	defaultPrinter()
	if len(tags) == 0 {
		tags = []string{language.AmericanEnglish.String()}
	}
	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return defaultPrinter().Sprintf(key, args...)
}
