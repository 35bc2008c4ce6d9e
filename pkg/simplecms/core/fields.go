package core

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/fieldtype"
)

type fieldKey struct {
	identifier string
	language   string
}

// mapFields merges input into base and returns the full, validated field
// set of a version. Values of non translatable fields always live in the
// main language and are copied to the other languages.
func (r *Repository) mapFields(ct *simplecms.ContentType, input, base []simplecms.Field, initialLanguage, mainLanguage string) ([]simplecms.Field, error) {
	values := make(map[fieldKey]any)
	languages := []string{mainLanguage}
	addLanguage := func(lang string) {
		if !slices.Contains(languages, lang) {
			languages = append(languages, lang)
		}
	}
	for _, f := range base {
		values[fieldKey{f.DefinitionIdentifier, f.LanguageCode}] = f.Value
		addLanguage(f.LanguageCode)
	}

	var errs []simplecms.FieldError
	for _, f := range input {
		def, ok := ct.FieldDefinition(f.DefinitionIdentifier)
		if !ok {
			return nil, invalid("fields", "content type %q has no field %q", ct.Identifier, f.DefinitionIdentifier)
		}
		lang := f.LanguageCode
		if lang == "" {
			lang = initialLanguage
		}
		if !def.IsTranslatable {
			lang = mainLanguage
		}
		ft, err := r.fieldTypes.Get(def.FieldTypeIdentifier)
		if err != nil {
			return nil, err
		}
		v, err := ft.FromHash(f.Value)
		if err != nil {
			errs = append(errs, simplecms.FieldError{FieldIdentifier: def.Identifier, LanguageCode: lang, Message: err.Error()})
			continue
		}
		values[fieldKey{def.Identifier, lang}] = v
		addLanguage(lang)
	}
	addLanguage(initialLanguage)

	defs := sortedDefinitions(ct)
	out := make([]simplecms.Field, 0, len(defs)*len(languages))
	for _, lang := range languages {
		for _, def := range defs {
			ft, err := r.fieldTypes.Get(def.FieldTypeIdentifier)
			if err != nil {
				return nil, err
			}
			v, ok := values[fieldKey{def.Identifier, lang}]
			if !def.IsTranslatable {
				v, ok = values[fieldKey{def.Identifier, mainLanguage}]
			}
			if !ok {
				if v, err = ft.FromHash(def.DefaultValue); err != nil {
					return nil, fmt.Errorf("default value of field %q: %w", def.Identifier, err)
				}
			} else if v, err = ft.FromHash(v); err != nil {
				errs = append(errs, simplecms.FieldError{FieldIdentifier: def.Identifier, LanguageCode: lang, Message: err.Error()})
				continue
			}

			if ft.IsEmpty(v) {
				if def.IsRequired && lang == mainLanguage {
					errs = append(errs, simplecms.FieldError{FieldIdentifier: def.Identifier, LanguageCode: lang, Message: "value is required"})
				}
			} else {
				for _, msg := range ft.Validate(def, v) {
					errs = append(errs, simplecms.FieldError{FieldIdentifier: def.Identifier, LanguageCode: lang, Message: msg})
				}
			}
			out = append(out, simplecms.Field{
				DefinitionIdentifier: def.Identifier,
				FieldTypeIdentifier:  def.FieldTypeIdentifier,
				LanguageCode:         lang,
				Value:                v,
			})
		}
	}
	if len(errs) > 0 {
		return nil, &simplecms.ContentFieldValidationError{Errors: errs}
	}
	return out, nil
}

// alignFields returns stored fields in the given languages shaped after the
// current definitions of the type. Values of removed definitions are
// dropped and new definitions get their default value.
func (r *Repository) alignFields(ct *simplecms.ContentType, stored []simplecms.Field, languages []string) []simplecms.Field {
	values := make(map[fieldKey]any, len(stored))
	for _, f := range stored {
		values[fieldKey{f.DefinitionIdentifier, f.LanguageCode}] = f.Value
	}
	var out []simplecms.Field
	for _, lang := range languages {
		for _, def := range sortedDefinitions(ct) {
			ft, err := r.fieldTypes.Get(def.FieldTypeIdentifier)
			if err != nil {
				r.logger.Warn("skipping field of unknown type", "field", def.Identifier, "type", def.FieldTypeIdentifier)
				continue
			}
			raw, ok := values[fieldKey{def.Identifier, lang}]
			if !ok {
				raw = def.DefaultValue
			}
			v, err := ft.FromHash(raw)
			if err != nil {
				r.logger.Warn("invalid stored field value", "field", def.Identifier, "language", lang, "err", err)
				v = nil
			}
			out = append(out, simplecms.Field{
				DefinitionIdentifier: def.Identifier,
				FieldTypeIdentifier:  def.FieldTypeIdentifier,
				LanguageCode:         lang,
				Value:                v,
			})
		}
	}
	return out
}

func sortedDefinitions(ct *simplecms.ContentType) []simplecms.FieldDefinition {
	defs := slices.Clone(ct.FieldDefinitions)
	slices.SortStableFunc(defs, func(a, b simplecms.FieldDefinition) int { return a.Position - b.Position })
	return defs
}

func fieldLanguages(fields []simplecms.Field, mainLanguage string) []string {
	languages := []string{}
	for _, f := range fields {
		if !slices.Contains(languages, f.LanguageCode) {
			languages = append(languages, f.LanguageCode)
		}
	}
	slices.SortFunc(languages, func(a, b string) int {
		switch {
		case a == mainLanguage:
			return -1
		case b == mainLanguage:
			return 1
		}
		return strings.Compare(a, b)
	})
	return languages
}

var nameSchemaToken = regexp.MustCompile(`<([^>]+)>`)

// contentName renders the name schema of ct. A token such as
// <short_title|title> takes the first non empty field text. Without a
// schema the first non empty field is used.
func (r *Repository) contentName(ct *simplecms.ContentType, fields []simplecms.Field, lang, mainLanguage string) string {
	text := func(identifier string) string {
		for _, l := range []string{lang, mainLanguage} {
			for _, f := range fields {
				if f.DefinitionIdentifier != identifier || f.LanguageCode != l {
					continue
				}
				ft, err := r.fieldTypes.Get(f.FieldTypeIdentifier)
				if err != nil {
					return ""
				}
				return ft.Text(f.Value)
			}
		}
		return ""
	}

	if strings.TrimSpace(ct.NameSchema) == "" {
		for _, def := range sortedDefinitions(ct) {
			if t := text(def.Identifier); t != "" {
				return t
			}
		}
		return ""
	}

	name := nameSchemaToken.ReplaceAllStringFunc(ct.NameSchema, func(token string) string {
		for _, identifier := range strings.Split(strings.Trim(token, "<>"), "|") {
			if t := text(strings.TrimSpace(identifier)); t != "" {
				return t
			}
		}
		return ""
	})
	return strings.TrimSpace(name)
}

func (r *Repository) versionNames(ct *simplecms.ContentType, fields []simplecms.Field, mainLanguage string) map[string]string {
	names := make(map[string]string)
	for _, lang := range fieldLanguages(fields, mainLanguage) {
		names[lang] = r.contentName(ct, fields, lang, mainLanguage)
	}
	return names
}

// fieldValues returns the values of every field of type identifier.
func fieldValues(fields []simplecms.Field, typeIdentifier string) []any {
	var out []any
	for _, f := range fields {
		if f.FieldTypeIdentifier == typeIdentifier && f.Value != nil {
			out = append(out, f.Value)
		}
	}
	return out
}

func urlLinks(fields []simplecms.Field) []string {
	var links []string
	for _, v := range fieldValues(fields, fieldtype.URL{}.Identifier()) {
		if link, ok := fieldtype.Link(v); ok && !slices.Contains(links, link) {
			links = append(links, link)
		}
	}
	return links
}

// normalizeFields restores the Go values of fields decoded from storage.
func (r *Repository) normalizeFields(fields []simplecms.Field) []simplecms.Field {
	out := make([]simplecms.Field, 0, len(fields))
	for _, f := range fields {
		if ft, err := r.fieldTypes.Get(f.FieldTypeIdentifier); err == nil {
			if v, err := ft.FromHash(f.Value); err == nil {
				f.Value = v
			}
		}
		out = append(out, f)
	}
	return out
}
