package application

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bnema/brevio-cli/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type payloadEntry struct {
	key   string
	value json.RawMessage
}

type styleWire struct {
	Style       string   `json:"style"`
	SourceTypes []string `json:"source_types"`
}

// unwrapDocument accepts either the document or a JSON string that contains
// it. Some deployments double-encode the response body.
func unwrapDocument(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response body")
	}
	if trimmed[0] != '"' {
		return trimmed, nil
	}

	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return nil, fmt.Errorf("decode wrapped document: %w", err)
	}
	return bytes.TrimSpace([]byte(inner)), nil
}

// dataField returns data.<field> from the document. A missing or null field
// yields nil without error.
func dataField(raw json.RawMessage, field string) (json.RawMessage, error) {
	doc, err := unwrapDocument(raw)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}

	value, ok := envelope.Data[field]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil, nil
	}
	return value, nil
}

// orderedEntries walks an object (or array) keeping wire order. A repeated
// key keeps its first position and takes the last value.
func orderedEntries(raw json.RawMessage) ([]payloadEntry, error) {
	return walkEntries(raw, false)
}

// uniqueEntries is orderedEntries for collections whose keys must be unique:
// a repeated key is an error.
func uniqueEntries(raw json.RawMessage) ([]payloadEntry, error) {
	return walkEntries(raw, true)
}

func walkEntries(raw json.RawMessage, rejectRepeats bool) ([]payloadEntry, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, fmt.Errorf("expected object or array, got %v", tok)
	}

	var entries []payloadEntry
	index := map[string]int{}
	for i := 0; dec.More(); i++ {
		key := strconv.Itoa(i)
		if delim == '{' {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read key: %w", err)
			}
			key, _ = keyTok.(string)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("read value for %q: %w", key, err)
		}

		if pos, seen := index[key]; seen {
			if rejectRepeats {
				return nil, fmt.Errorf("%w: repeated key %q", domain.ErrInvalidCatalog, key)
			}
			entries[pos].value = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, payloadEntry{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("close collection: %w", err)
	}
	return entries, nil
}

// scalarText renders a string or number value as text.
func scalarText(raw json.RawMessage) (string, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var number json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&number); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", string(raw))
	}
	return number.String(), nil
}

func decodeLanguages(raw json.RawMessage) ([]domain.Option, error) {
	return decodeOptions(raw, "languages", func(key, name string) domain.Option {
		return domain.Option{Value: strings.ToLower(key), Label: titleWords(name, " ")}
	})
}

func decodeModels(raw json.RawMessage) ([]domain.Option, error) {
	return decodeOptions(raw, "models", func(key, name string) domain.Option {
		return domain.Option{Value: strings.ToLower(key), Label: name}
	})
}

func decodeOutputFormats(raw json.RawMessage) ([]domain.Option, error) {
	return decodeOptions(raw, "output_format_types", func(key, name string) domain.Option {
		return domain.Option{Value: strings.ToLower(key), Label: name}
	})
}

func decodeSummaryLevels(raw json.RawMessage) ([]domain.Option, error) {
	return decodeOptions(raw, "summary_levels", func(key, words string) domain.Option {
		value := strings.ToLower(key)
		return domain.Option{
			Value: value,
			Label: fmt.Sprintf("%s (%s words approximately per response)", strings.ReplaceAll(value, "_", " "), strings.ToLower(words)),
		}
	})
}

func decodeOptions(raw json.RawMessage, field string, build func(key, text string) domain.Option) ([]domain.Option, error) {
	section, err := dataField(raw, field)
	if err != nil {
		return nil, err
	}

	entries, err := orderedEntries(section)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", field, err)
	}

	options := make([]domain.Option, 0, len(entries))
	for _, entry := range entries {
		text, err := scalarText(entry.value)
		if err != nil {
			return nil, fmt.Errorf("decode %s[%q]: %w", field, entry.key, err)
		}
		options = append(options, build(entry.key, text))
	}
	return options, nil
}

func decodeCombinations(raw json.RawMessage) (domain.CombinationGraph, error) {
	section, err := dataField(raw, "advanced_content_combinations")
	if err != nil {
		return domain.CombinationGraph{}, err
	}

	entries, err := uniqueEntries(section)
	if err != nil {
		return domain.CombinationGraph{}, fmt.Errorf("decode advanced_content_combinations: %w", err)
	}

	categories := make([]domain.CategoryEntry, 0, len(entries))
	for _, entry := range entries {
		var styles []styleWire
		if err := json.Unmarshal(entry.value, &styles); err != nil {
			return domain.CombinationGraph{}, fmt.Errorf("decode category %q: %w", entry.key, err)
		}

		category := domain.CategoryEntry{Name: entry.key, Styles: make([]domain.StyleEntry, 0, len(styles))}
		for _, style := range styles {
			sourceTypes := make([]domain.SourceType, 0, len(style.SourceTypes))
			for _, rawType := range style.SourceTypes {
				sourceTypes = append(sourceTypes, domain.SourceType(rawType))
			}
			category.Styles = append(category.Styles, domain.StyleEntry{Style: style.Style, SourceTypes: sourceTypes})
		}
		categories = append(categories, category)
	}

	return domain.NewCombinationGraph(categories)
}

// titleWords title-cases every word of s split on sep and joins with spaces.
// A cases.Caser is not safe for concurrent use, so one is built per call.
func titleWords(s, sep string) string {
	caser := cases.Title(language.Und)
	words := strings.Split(s, sep)
	for i, word := range words {
		words[i] = caser.String(word)
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
