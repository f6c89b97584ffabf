// Package dictionary builds IME user dictionary entries.
package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/open-cli-collective/wikidict/internal/extract"
	"github.com/open-cli-collective/wikidict/internal/kana"
)

// DefaultPartOfSpeech is the part of speech written for every entry.
const DefaultPartOfSpeech = "固有名詞"

// longVowelMark switches reading conversion to ー for doubled vowels.
const longVowelMark = "ー"

// Entry is one line of the dictionary.
type Entry struct {
	Reading      string `json:"reading"`
	Word         string `json:"word"`
	PartOfSpeech string `json:"part_of_speech"`
}

// String renders the entry as a tab separated dictionary line.
func (e Entry) String() string {
	return e.Reading + "\t" + e.Word + "\t" + e.PartOfSpeech
}

// Options controls how pairs become entries.
type Options struct {
	RubyTemplate string
	PartOfSpeech string
	Fixups       map[string]string
}

// DefaultOptions returns the options matching extract.DefaultOptions.
func DefaultOptions() Options {
	return Options{
		RubyTemplate: extract.DefaultOptions().RubyTemplate,
		PartOfSpeech: DefaultPartOfSpeech,
		Fixups:       kana.DefaultFixups,
	}
}

// Build turns an extracted pair into an entry. It returns false when the
// pair has no usable word or reading.
func Build(pair extract.Pair, opts Options) (Entry, bool) {
	word, romaji, ok := pair.Resolve(extract.RubyExpander(opts.RubyTemplate))
	if !ok {
		return Entry{}, false
	}

	reading := kana.ToHiragana(romaji, strings.Contains(word, longVowelMark))
	reading = kana.ApplyFixups(reading, opts.Fixups)
	if reading == "" {
		return Entry{}, false
	}

	return Entry{Reading: reading, Word: word, PartOfSpeech: opts.PartOfSpeech}, true
}

// Builder collects entries in first-seen order, dropping repeats of the
// same reading and word.
type Builder struct {
	entries []Entry
	seen    map[string]struct{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// Add appends e unless an entry with the same reading and word exists.
// It reports whether e was added.
func (b *Builder) Add(e Entry) bool {
	key := e.Reading + "\x00" + e.Word
	if _, ok := b.seen[key]; ok {
		return false
	}
	b.seen[key] = struct{}{}
	b.entries = append(b.entries, e)
	return true
}

// Entries returns the collected entries.
func (b *Builder) Entries() []Entry {
	return b.entries
}

// Len returns the number of collected entries.
func (b *Builder) Len() int {
	return len(b.entries)
}

// WriteTo writes one line per entry to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range b.entries {
		n, err := fmt.Fprintln(w, e.String())
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write entry: %w", err)
		}
	}
	return total, nil
}

// WriteFile replaces path with the dictionary. The file is written to a
// temporary name and renamed, so readers never see a partial dictionary.
func (b *Builder) WriteFile(path string) error {
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write dictionary file: %w", err)
	}
	return nil
}
