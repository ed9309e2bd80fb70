package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// The collection key appears under two spellings in the wild. Both are
// recognized at the root and the group level, independently.
const (
	primaryKey   = "models"
	alternateKey = "modeles"
)

// rawObject preserves a JSON object's fields in document order. Other tooling
// maintains the catalog too, so a load→save round trip must not reorder
// fields or the diff drowns the one change that matters.
type rawObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *rawObject) decode(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	o.keys = nil
	o.values = make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		if _, seen := o.values[key]; !seen {
			o.keys = append(o.keys, key)
		}
		o.values[key] = value
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON re-emits the fields in their original order. Fields set after
// decoding come out last.
func (o *rawObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := encodeRaw(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(o.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *rawObject) get(key string) (json.RawMessage, bool) {
	value, ok := o.values[key]
	return value, ok
}

func (o *rawObject) set(key string, value json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, seen := o.values[key]; !seen {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *rawObject) stringField(key string, dst *string) error {
	payload, ok := o.values[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	return nil
}

// Entry is one audio sample awaiting (or holding) a reference transcript.
// All fields of the underlying JSON object are preserved; only ref_text is
// ever written, exactly once, when a transcript is committed.
type Entry struct {
	name     string
	file     string
	language string
	refText  string

	raw rawObject
}

// DisplayName returns the entry's name, or "Unknown" when absent.
func (e *Entry) DisplayName() string {
	if strings.TrimSpace(e.name) == "" {
		return "Unknown"
	}
	return e.name
}

// File returns the declared relative audio path. Empty means the entry
// cannot be processed.
func (e *Entry) File() string { return e.file }

// Language returns the optional language hint.
func (e *Entry) Language() string { return e.language }

// RefText returns the reference transcript, or "" when the entry is pending.
func (e *Entry) RefText() string { return e.refText }

// Pending reports whether the entry still needs a reference transcript.
func (e *Entry) Pending() bool {
	return strings.TrimSpace(e.refText) == ""
}

// SetRefText records the reference transcript. Empty or whitespace-only
// values and already-satisfied entries are rejected so a committed transcript
// is never blanked or overwritten.
func (e *Entry) SetRefText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("ref_text must not be empty")
	}
	if !e.Pending() {
		return fmt.Errorf("entry %q already has ref_text", e.DisplayName())
	}
	raw, err := encodeRaw(trimmed)
	if err != nil {
		return fmt.Errorf("encode ref_text: %w", err)
	}
	e.refText = trimmed
	e.raw.set("ref_text", raw)
	return nil
}

// UnmarshalJSON decodes the known fields and retains everything else raw.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if err := e.raw.decode(data); err != nil {
		return err
	}
	if err := e.raw.stringField("name", &e.name); err != nil {
		return err
	}
	if err := e.raw.stringField("file", &e.file); err != nil {
		return err
	}
	if err := e.raw.stringField("language", &e.language); err != nil {
		return err
	}
	return e.raw.stringField("ref_text", &e.refText)
}

// MarshalJSON re-emits the original object in its original field order,
// including fields this tool does not model, with any committed ref_text
// applied.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return e.raw.MarshalJSON()
}

// Group is a named collection of entries.
type Group struct {
	Entries []*Entry

	entriesKey string
	raw        rawObject
}

func (g *Group) UnmarshalJSON(data []byte) error {
	if err := g.raw.decode(data); err != nil {
		return err
	}
	key, payload := collectionKey(&g.raw)
	g.entriesKey = key
	if key == "" {
		return nil
	}
	if err := json.Unmarshal(payload, &g.Entries); err != nil {
		return fmt.Errorf("group %s: %w", key, err)
	}
	return nil
}

func (g *Group) MarshalJSON() ([]byte, error) {
	if g.entriesKey != "" {
		entries, err := encodeRaw(g.Entries)
		if err != nil {
			return nil, err
		}
		g.raw.set(g.entriesKey, entries)
	}
	return g.raw.MarshalJSON()
}

// Catalog is the root document: one collection of groups plus any sibling
// fields other tooling maintains.
type Catalog struct {
	Groups []*Group

	groupsKey string
	raw       rawObject
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	if err := c.raw.decode(data); err != nil {
		return err
	}
	key, payload := collectionKey(&c.raw)
	c.groupsKey = key
	if key == "" {
		return nil
	}
	if err := json.Unmarshal(payload, &c.Groups); err != nil {
		return fmt.Errorf("catalog %s: %w", key, err)
	}
	return nil
}

func (c *Catalog) MarshalJSON() ([]byte, error) {
	if c.groupsKey != "" {
		groups, err := encodeRaw(c.Groups)
		if err != nil {
			return nil, err
		}
		c.raw.set(c.groupsKey, groups)
	}
	return c.raw.MarshalJSON()
}

// Pending returns the entries still lacking a reference transcript, in
// document order across all groups. The order is stable for a given input.
func (c *Catalog) Pending() []*Entry {
	var pending []*Entry
	for _, group := range c.Groups {
		for _, entry := range group.Entries {
			if entry.Pending() {
				pending = append(pending, entry)
			}
		}
	}
	return pending
}

// EntryCount returns the total number of entries across all groups.
func (c *Catalog) EntryCount() int {
	total := 0
	for _, group := range c.Groups {
		total += len(group.Entries)
	}
	return total
}

// collectionKey picks the collection spelling present in raw. When both
// spellings are present the primary one wins and the alternate is passed
// through untouched like any other unknown field.
func collectionKey(raw *rawObject) (string, json.RawMessage) {
	if payload, ok := raw.get(primaryKey); ok {
		return primaryKey, payload
	}
	if payload, ok := raw.get(alternateKey); ok {
		return alternateKey, payload
	}
	return "", nil
}

// encodeRaw marshals without HTML escaping so transcripts and preserved
// fields keep their characters as written.
func encodeRaw(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
