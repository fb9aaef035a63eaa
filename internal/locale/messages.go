package locale

import (
	"embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed catalog/*.toml
var catalogFiles embed.FS

// Messages holds every user-facing string for one language. It is resolved
// once per run and never mutated afterwards.
type Messages struct {
	AskUniquePass          string
	AskVariablePass        string
	AskGetSysDefaultMethod string
	AskMenuMethod          string
	AskRepeatMethodTimes   string
	AskCreateFile          string
	ErrorParse             string
	ErrorUnknownMethod     string
	ErrorNumberParse       string
	ErrorFileOpen          string
	ErrorFileParse         string
	ErrorFileRead          string
	ErrorFileProp          string
	ErrorInput             string
	ErrorInvalidCharacter  string
	FinalResult            string
	FinalResultShow        string
	FinalResultEncrypted   string
}

var loadBundle = sync.OnceValues(func() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.AmericanEnglish)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, name := range []string{"catalog/messages.en-US.toml", "catalog/messages.pt-BR.toml"} {
		if _, err := bundle.LoadMessageFileFS(catalogFiles, name); err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return bundle, nil
})

// NewMessages resolves the message table for lang.
func NewMessages(lang Language) (*Messages, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}

	localizer := i18n.NewLocalizer(bundle, lang.Tag().String())
	m := &Messages{}
	for id, dst := range m.fields() {
		s, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
		if err != nil {
			return nil, fmt.Errorf("localizing %s for %s: %w", id, lang, err)
		}
		*dst = s
	}
	return m, nil
}

// MustMessages is NewMessages for the embedded catalogues, which are known
// to be complete.
func MustMessages(lang Language) *Messages {
	m, err := NewMessages(lang)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Messages) fields() map[string]*string {
	return map[string]*string{
		"AskUniquePass":          &m.AskUniquePass,
		"AskVariablePass":        &m.AskVariablePass,
		"AskGetSysDefaultMethod": &m.AskGetSysDefaultMethod,
		"AskMenuMethod":          &m.AskMenuMethod,
		"AskRepeatMethodTimes":   &m.AskRepeatMethodTimes,
		"AskCreateFile":          &m.AskCreateFile,
		"ErrorParse":             &m.ErrorParse,
		"ErrorUnknownMethod":     &m.ErrorUnknownMethod,
		"ErrorNumberParse":       &m.ErrorNumberParse,
		"ErrorFileOpen":          &m.ErrorFileOpen,
		"ErrorFileParse":         &m.ErrorFileParse,
		"ErrorFileRead":          &m.ErrorFileRead,
		"ErrorFileProp":          &m.ErrorFileProp,
		"ErrorInput":             &m.ErrorInput,
		"ErrorInvalidCharacter":  &m.ErrorInvalidCharacter,
		"FinalResult":            &m.FinalResult,
		"FinalResultShow":        &m.FinalResultShow,
		"FinalResultEncrypted":   &m.FinalResultEncrypted,
	}
}
