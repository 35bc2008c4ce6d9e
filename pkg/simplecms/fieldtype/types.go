package fieldtype

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// String is a single line of text (ezstring). Settings: min_length,
// max_length.
type String struct{}

func (String) Identifier() string { return "ezstring" }

func (String) FromHash(value any) (any, error) {
	return toString(value)
}

func (String) IsEmpty(value any) bool {
	s, _ := value.(string)
	return strings.TrimSpace(s) == ""
}

func (String) Validate(definition simplecms.FieldDefinition, value any) []string {
	s, _ := value.(string)
	var msgs []string
	n := utf8.RuneCountInString(s)
	if max, ok := setting[int](definition, "max_length"); ok && max > 0 && n > max {
		msgs = append(msgs, fmt.Sprintf("the string cannot exceed %d characters", max))
	}
	if min, ok := setting[int](definition, "min_length"); ok && n < min {
		msgs = append(msgs, fmt.Sprintf("the string cannot be shorter than %d characters", min))
	}
	return msgs
}

func (String) Text(value any) string {
	s, _ := value.(string)
	return s
}

// Text is multi line text (eztext).
type Text struct{}

func (Text) Identifier() string { return "eztext" }

func (Text) FromHash(value any) (any, error) { return toString(value) }

func (Text) IsEmpty(value any) bool {
	s, _ := value.(string)
	return strings.TrimSpace(s) == ""
}

func (Text) Validate(simplecms.FieldDefinition, any) []string { return nil }

func (Text) Text(value any) string {
	s, _ := value.(string)
	return s
}

// Integer is a whole number (ezinteger). Settings: min_value, max_value.
type Integer struct{}

func (Integer) Identifier() string { return "ezinteger" }

func (Integer) FromHash(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported integer value %T", value)
	}
}

func (Integer) IsEmpty(value any) bool { return value == nil }

func (Integer) Validate(definition simplecms.FieldDefinition, value any) []string {
	n, ok := value.(int64)
	if !ok {
		return nil
	}
	var msgs []string
	if min, ok := setting[int64](definition, "min_value"); ok && n < min {
		msgs = append(msgs, fmt.Sprintf("the value can not be lower than %d", min))
	}
	if max, ok := setting[int64](definition, "max_value"); ok && n > max {
		msgs = append(msgs, fmt.Sprintf("the value can not be higher than %d", max))
	}
	return msgs
}

func (Integer) Text(value any) string {
	if n, ok := value.(int64); ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// Boolean is a checkbox (ezboolean). It is never empty.
type Boolean struct{}

func (Boolean) Identifier() string { return "ezboolean" }

func (Boolean) FromHash(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", v)
		}
		return b, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	default:
		return nil, fmt.Errorf("unsupported boolean value %T", value)
	}
}

func (Boolean) IsEmpty(any) bool { return false }

func (Boolean) Validate(simplecms.FieldDefinition, any) []string { return nil }

func (Boolean) Text(value any) string {
	if b, _ := value.(bool); b {
		return "1"
	}
	return "0"
}

// URLValue is the value of a URL field.
type URLValue struct {
	Link string `json:"link"`
	Text string `json:"text,omitempty"`
}

// URL is a link with an optional label (ezurl). Links are registered with
// the URL service when content is published.
type URL struct{}

func (URL) Identifier() string { return "ezurl" }

func (URL) FromHash(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case URLValue:
		return v, nil
	case *URLValue:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	case string:
		return URLValue{Link: v}, nil
	default:
		var out URLValue
		if err := decodeInto(value, &out); err != nil {
			return nil, fmt.Errorf("unsupported url value %T: %w", value, err)
		}
		return out, nil
	}
}

func (URL) IsEmpty(value any) bool {
	v, ok := value.(URLValue)
	return !ok || strings.TrimSpace(v.Link) == ""
}

func (URL) Validate(_ simplecms.FieldDefinition, value any) []string {
	v, ok := value.(URLValue)
	if !ok || v.Link == "" {
		return nil
	}
	if _, err := url.Parse(v.Link); err != nil {
		return []string{fmt.Sprintf("invalid link %q", v.Link)}
	}
	return nil
}

func (URL) Text(value any) string {
	v, _ := value.(URLValue)
	if v.Text != "" {
		return v.Text
	}
	return v.Link
}

// Link returns the link of a URL field value.
func Link(value any) (string, bool) {
	v, ok := value.(URLValue)
	if !ok || v.Link == "" {
		return "", false
	}
	return v.Link, true
}

// BinaryFileValue references a file stored through the binary service.
type BinaryFileValue struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
	URI      string `json:"uri,omitempty"`
}

// BinaryFile is an uploaded file (ezbinaryfile). Settings: max_file_size in
// bytes.
type BinaryFile struct{}

func (BinaryFile) Identifier() string { return "ezbinaryfile" }

func (BinaryFile) FromHash(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case BinaryFileValue:
		return v, nil
	case *BinaryFileValue:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	default:
		var out BinaryFileValue
		if err := decodeInto(value, &out); err != nil {
			return nil, fmt.Errorf("unsupported binary file value %T: %w", value, err)
		}
		return out, nil
	}
}

func (BinaryFile) IsEmpty(value any) bool {
	v, ok := value.(BinaryFileValue)
	return !ok || v.ID == ""
}

func (BinaryFile) Validate(definition simplecms.FieldDefinition, value any) []string {
	v, ok := value.(BinaryFileValue)
	if !ok {
		return nil
	}
	if max, ok := setting[int64](definition, "max_file_size"); ok && max > 0 && v.FileSize > max {
		return []string{fmt.Sprintf("the file size cannot exceed %d bytes", max)}
	}
	return nil
}

func (BinaryFile) Text(value any) string {
	v, _ := value.(BinaryFileValue)
	return v.FileName
}

// Email is an e-mail address (ezemail).
type Email struct{}

func (Email) Identifier() string { return "ezemail" }

func (Email) FromHash(value any) (any, error) { return toString(value) }

func (Email) IsEmpty(value any) bool {
	s, _ := value.(string)
	return strings.TrimSpace(s) == ""
}

func (Email) Validate(_ simplecms.FieldDefinition, value any) []string {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return []string{fmt.Sprintf("%q is not a valid e-mail address", s)}
	}
	return nil
}

func (Email) Text(value any) string {
	s, _ := value.(string)
	return s
}

func toString(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case float64, int, int64, bool:
		return fmt.Sprint(v), nil
	default:
		return nil, fmt.Errorf("unsupported text value %T", value)
	}
}
