package media

import (
	"strings"

	"golang.org/x/text/language"
)

// Message keys used by the renderer.
const (
	KeyVideoNotSupported = "html5 video not supported"
	KeyAudioNotSupported = "html5 audio not supported"
	KeyFallbackLink      = "html5 media fallback link"
	KeyDescription       = "html5 media description"
)

// Translator looks up a message for a language. Each "%s" in the message is
// replaced by the next argument.
type Translator interface {
	Translate(lang, key string, args ...string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(lang, key string, args ...string) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(lang, key string, args ...string) string {
	return f(lang, key, args...)
}

// Catalog is a Translator backed by in-memory message tables. Requested
// languages are matched against the catalog's languages. The first language
// is the fallback.
type Catalog struct {
	tags     []language.Tag
	messages []map[string]string
	matcher  language.Matcher
}

// Messages maps a message key to its text for one language.
type Messages map[string]string

// NewCatalog builds a catalog. The first entry is the fallback language.
func NewCatalog(entries ...CatalogEntry) *Catalog {
	catalog := &Catalog{}
	for _, entry := range entries {
		catalog.tags = append(catalog.tags, entry.Tag)
		catalog.messages = append(catalog.messages, entry.Messages)
	}
	catalog.matcher = language.NewMatcher(catalog.tags)
	return catalog
}

// CatalogEntry is one language of a catalog.
type CatalogEntry struct {
	Tag      language.Tag
	Messages Messages
}

// DefaultCatalog returns the built-in English, German and French messages.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		CatalogEntry{Tag: language.English, Messages: Messages{
			KeyVideoNotSupported: "Your browser does not support playing HTML5 video.",
			KeyAudioNotSupported: "Your browser does not support playing HTML5 audio.",
			KeyFallbackLink:      `You can <a href="%s" download>download the file</a> instead.`,
			KeyDescription:       "Here is a description of the content: %s",
		}},
		CatalogEntry{Tag: language.German, Messages: Messages{
			KeyVideoNotSupported: "Ihr Browser kann dieses HTML5-Video nicht wiedergeben.",
			KeyAudioNotSupported: "Ihr Browser kann dieses HTML5-Audio nicht wiedergeben.",
			KeyFallbackLink:      `Stattdessen können Sie <a href="%s" download>die Datei herunterladen</a>.`,
			KeyDescription:       "Hier ist eine Beschreibung des Inhalts: %s",
		}},
		CatalogEntry{Tag: language.French, Messages: Messages{
			KeyVideoNotSupported: "Votre navigateur ne peut pas lire cette vidéo HTML5.",
			KeyAudioNotSupported: "Votre navigateur ne peut pas lire cet audio HTML5.",
			KeyFallbackLink:      `Vous pouvez <a href="%s" download>télécharger le fichier</a> à la place.`,
			KeyDescription:       "Voici une description du contenu : %s",
		}},
	)
}

// Translate implements Translator. Unknown keys are returned unchanged.
func (c *Catalog) Translate(lang, key string, args ...string) string {
	if c == nil || len(c.messages) == 0 {
		return key
	}

	idx := 0
	if lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			_, matched, confidence := c.matcher.Match(tag)
			if confidence != language.No {
				idx = matched
			}
		}
	}

	message, ok := c.messages[idx][key]
	if !ok {
		// Fall back to the default language before giving up.
		message, ok = c.messages[0][key]
		if !ok {
			return key
		}
	}
	return substitute(message, args)
}

// Languages returns the catalog's languages in order.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.tags))
	for i, tag := range c.tags {
		out[i] = tag.String()
	}
	return out
}

func substitute(message string, args []string) string {
	for _, arg := range args {
		message = strings.Replace(message, "%s", arg, 1)
	}
	return message
}
