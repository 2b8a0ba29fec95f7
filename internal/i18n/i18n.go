// Package i18n provides language detection and translation for the
// user-visible notification strings.
package i18n

import (
	"os"
	"strings"
)

// Translator resolves catalog keys for one language, falling back to
// English for keys missing from the active catalog.
type Translator struct {
	lang    string
	catalog map[string]string
}

// New returns a Translator for the given language code. Unsupported
// codes fall back to English.
func New(lang string) *Translator {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	return &Translator{lang: lang, catalog: catalogs[lang]}
}

// Lang returns the active language code.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates a key, substituting {name} placeholders from args.
// Unknown keys are returned verbatim so a catalog gap never loses the
// notification.
func (t *Translator) T(key string, args map[string]string) string {
	msg, ok := t.catalog[key]
	if !ok {
		msg, ok = catalogs["en"][key]
	}
	if !ok {
		return key
	}
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}

// Detect resolves the language code to use. A non-empty override (from
// settings) wins; otherwise the LANG/LC_ALL/LANGUAGE chain is consulted,
// defaulting to English.
func Detect(override string) string {
	if override != "" {
		return normalize(override)
	}
	for _, env := range []string{"LANG", "LC_ALL", "LANGUAGE"} {
		if v := os.Getenv(env); v != "" {
			return normalize(v)
		}
	}
	return "en"
}

// normalize maps a locale string like "zh_CN.UTF-8" to a catalog code.
func normalize(locale string) string {
	if strings.Contains(locale, "zh_CN") || strings.Contains(locale, "zh-CN") || strings.Contains(locale, "zh-Hans") {
		return "zh-CN"
	}
	base := locale
	if i := strings.IndexAny(base, "_."); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return "en"
	}
	return base
}
