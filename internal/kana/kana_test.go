package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHiragana(t *testing.T) {
	tests := []struct {
		name      string
		romaji    string
		longVowel bool
		want      string
	}{
		{"empty", "", false, ""},
		{"long vowel mark", "kaa", true, "かー"},
		{"long vowel disabled", "kaa", false, "かあ"},
		{"uppercase letters", "Inazuma", false, "いなずま"},
		{"syllabic n before consonant", "konnichiha", false, "こんにちは"},
		{"n at end", "Shougun", false, "しょうぐん"},
		{"lone n", "n", false, "ん"},
		{"dangling consonant", "k", false, ""},
		{"geminate consonant", "kitte", false, "きって"},
		{"y digraph with long vowel", "Ryuu", true, "りゅー"},
		{"y digraph", "kyara", false, "きゃら"},
		{"ny digraph", "nyo", false, "にょ"},
		{"ts family", "Tsurumi", false, "つるみ"},
		{"ch family", "Chouchou", false, "ちょうちょう"},
		{"j family", "Jean", false, "じぇあん"},
		{"ti and v", "Venti", false, "ゔぇんてぃ"},
		{"f family", "fontein", false, "ふぉんていん"},
		{"w row", "wo", false, "を"},
		{"doubled j is not geminate", "jja", false, "じゃ"},
		{"punctuation dropped", "ha-ru", false, "はる"},
		{"long vowel only for repeated input letter", "Aa", true, "ああ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHiragana(tt.romaji, tt.longVowel))
		})
	}
}

func TestApplyFixups(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fixups map[string]string
		want   string
	}{
		{"default fixup", "しんりいうぇ", DefaultFixups, "しんりーゆえ"},
		{"no fixups", "かな", nil, "かな"},
		{"longest key first", "abcab", map[string]string{"ab": "X", "abc": "Y"}, "YX"},
		{"empty key ignored", "かな", map[string]string{"": "x"}, "かな"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyFixups(tt.input, tt.fixups))
		})
	}
}
