// Copyright 2023 FoxDen Industries
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package cfa635

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// EncodeText converts a string to the Latin-1 cell bytes the module expects.
// Runes outside Latin-1 become the encoder's substitute byte rather than
// failing; text destined for the display should not abort a render.
func EncodeText(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}

// DecodeText converts Latin-1 bytes from the module (version strings, error
// payloads) back to a string.
func DecodeText(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}
