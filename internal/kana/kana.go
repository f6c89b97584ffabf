// Package kana converts romanized Japanese readings to hiragana.
package kana

import (
	"sort"
	"strings"
)

// vowelKana maps a bare vowel to its kana.
var vowelKana = map[byte]string{
	'a': "あ", 'i': "い", 'u': "う", 'e': "え", 'o': "お",
}

// syllables maps a consonant to the kana for each following vowel.
// Missing vowels (e.g. "yi") produce nothing.
var syllables = map[byte]map[byte]string{
	'k': {'a': "か", 'i': "き", 'u': "く", 'e': "け", 'o': "こ"},
	's': {'a': "さ", 'i': "し", 'u': "す", 'e': "せ", 'o': "そ"},
	't': {'a': "た", 'i': "てぃ", 'u': "とぅ", 'e': "て", 'o': "と"},
	'n': {'a': "な", 'i': "に", 'u': "ぬ", 'e': "ね", 'o': "の"},
	'h': {'a': "は", 'i': "ひ", 'u': "ふ", 'e': "へ", 'o': "ほ"},
	'f': {'a': "ふぁ", 'i': "ふぃ", 'u': "ふ", 'e': "ふぇ", 'o': "ふぉ"},
	'm': {'a': "ま", 'i': "み", 'u': "む", 'e': "め", 'o': "も"},
	'y': {'a': "や", 'u': "ゆ", 'o': "よ"},
	'r': {'a': "ら", 'i': "り", 'u': "る", 'e': "れ", 'o': "ろ"},
	'w': {'a': "わ", 'i': "うぃ", 'e': "うぇ", 'o': "を"},
	'g': {'a': "が", 'i': "ぎ", 'u': "ぐ", 'e': "げ", 'o': "ご"},
	'z': {'a': "ざ", 'i': "じ", 'u': "ず", 'e': "ぜ", 'o': "ぞ"},
	'j': {'a': "じゃ", 'i': "じ", 'u': "じゅ", 'e': "じぇ", 'o': "じょ"},
	'd': {'a': "だ", 'i': "でぃ", 'u': "どぅ", 'e': "で", 'o': "ど"},
	'b': {'a': "ば", 'i': "び", 'u': "ぶ", 'e': "べ", 'o': "ぼ"},
	'v': {'a': "ゔぁ", 'i': "ゔぃ", 'u': "ゔ", 'e': "ゔぇ", 'o': "ゔぉ"},
	'p': {'a': "ぱ", 'i': "ぴ", 'u': "ぷ", 'e': "ぺ", 'o': "ぽ"},
}

// yDigraphs maps a consonant to the i-row kana used before a small ya/yu/yo.
var yDigraphs = map[byte]string{
	'k': "き", 's': "し", 't': "ち", 'n': "に", 'h': "ひ", 'm': "み",
	'r': "り", 'g': "ぎ", 'z': "じ", 'b': "び", 'p': "ぴ",
}

// smallY is the small kana written after an i-row kana.
var smallY = map[byte]string{'a': "ゃ", 'u': "ゅ", 'o': "ょ"}

// threeLetter covers the consonant pairs that take a third letter.
var threeLetter = map[string]map[byte]string{
	"sh": {'a': "しゃ", 'i': "し", 'u': "しゅ", 'e': "しぇ", 'o': "しょ"},
	"ch": {'a': "ちゃ", 'i': "ち", 'u': "ちゅ", 'e': "ちぇ", 'o': "ちょ"},
	"ts": {'a': "つぁ", 'i': "つぃ", 'u': "つ", 'e': "つぇ", 'o': "つぉ"},
}

// DefaultFixups corrects readings the letter-by-letter conversion gets wrong.
var DefaultFixups = map[string]string{
	"りいうぇ": "りーゆえ",
}

// ToHiragana converts romaji to hiragana. Letters are matched
// case-insensitively; characters that form no syllable are dropped.
//
// A doubled consonant becomes っ. When longVowel is set, a vowel that
// repeats the previous character becomes ー.
func ToHiragana(romaji string, longVowel bool) string {
	var sb strings.Builder
	lower := lowerASCII(romaji)

	for i := 0; i < len(lower); i++ {
		c := lower[i]

		if kana, ok := vowelKana[c]; ok {
			if longVowel && i > 0 && romaji[i-1] == c {
				sb.WriteString("ー")
			} else {
				sb.WriteString(kana)
			}
			continue
		}

		if c == 'c' {
			i += consonantC(&sb, lower, i)
			continue
		}

		row, ok := syllables[c]
		if !ok {
			continue
		}
		if i+1 >= len(lower) {
			if c == 'n' {
				sb.WriteString("ん")
			}
			break
		}

		next := lower[i+1]
		if kana, ok := row[next]; ok {
			sb.WriteString(kana)
			i++
			continue
		}

		switch {
		case next == c && c != 'j':
			if c == 'n' {
				sb.WriteString("ん")
			} else {
				sb.WriteString("っ")
			}
		case (c == 's' && next == 'h') || (c == 't' && next == 's'):
			if i+2 >= len(lower) {
				return sb.String()
			}
			sb.WriteString(threeLetter[lower[i:i+2]][lower[i+2]])
			i += 2
		case next == 'y' && yDigraphs[c] != "":
			if i+2 >= len(lower) {
				return sb.String()
			}
			if small, ok := smallY[lower[i+2]]; ok {
				sb.WriteString(yDigraphs[c])
				sb.WriteString(small)
			}
			i += 2
		case c == 'n':
			sb.WriteString("ん")
		}
	}

	return sb.String()
}

// consonantC handles the "ch" family and "cc" gemination. It returns the
// number of extra bytes consumed.
func consonantC(sb *strings.Builder, lower string, i int) int {
	if i+1 >= len(lower) {
		return len(lower)
	}
	switch lower[i+1] {
	case 'c':
		sb.WriteString("っ")
		return 0
	case 'h':
		if i+2 >= len(lower) {
			return len(lower)
		}
		sb.WriteString(threeLetter["ch"][lower[i+2]])
		return 2
	default:
		return 0
	}
}

// ApplyFixups replaces every fixup key in s with its value. Keys are applied
// longest first so overlapping fixups are deterministic.
func ApplyFixups(s string, fixups map[string]string) string {
	if len(fixups) == 0 {
		return s
	}
	keys := make([]string, 0, len(fixups))
	for k := range fixups {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		s = strings.ReplaceAll(s, k, fixups[k])
	}
	return s
}

// lowerASCII lowercases ASCII letters only, keeping byte offsets stable.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
