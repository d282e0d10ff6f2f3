// Package locale translates user-facing messages.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

//go:embed translations/*.toml
var translationFS embed.FS

const translationDir = "translations"

type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// New loads the embedded message files and returns a translator for
// lang. Unknown or malformed languages fall back to English.
func New(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(translationFS, translationDir)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		_, err := bundle.LoadMessageFileFS(translationFS, path.Join(translationDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load translation %s: %w", entry.Name(), err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	base, _ := tag.Base()

	return &Translator{
		lang:      base.String(),
		localizer: i18n.NewLocalizer(bundle, tag.String(), LanguageEn),
	}, nil
}

// MustNew is New for the embedded files, which are known to load.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Translator) Language() string {
	return t.lang
}

// T returns the message for id, or id itself when there is none.
func (t *Translator) T(id string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}

// TData is T for messages with template fields.
func (t *Translator) TData(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
