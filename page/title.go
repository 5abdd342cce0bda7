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

package page

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrTitleTooLong is returned for titles wider than the panel.
var ErrTitleTooLong = errors.New("page: title wider than the panel")

// FormatTitle centers a title to exactly width characters, framed by the
// pad character. A title whose parity differs from the width gains one
// space, by widening a space near the middle of the title when it has one.
func FormatTitle(title string, width int, pad byte) (string, error) {
	if len(title) > width {
		return "", ErrTitleTooLong
	}
	if len(title) == width {
		return title, nil
	}

	if len(title)%2 != width%2 {
		if idx := centerSpaceIndex(title); idx >= 0 {
			title = title[:idx] + " " + title[idx:]
		} else {
			title += " "
		}
	}
	if len(title) == width {
		return title, nil
	}

	title = " " + title + " "
	if len(title) == width {
		return title, nil
	}

	side := strings.Repeat(string(pad), (width-len(title))/2)
	return side + title + side, nil
}

// centerSpaceIndex finds the space nearest the middle of the text, or -1 if
// the text has none.
func centerSpaceIndex(text string) int {
	center := len(text) / 2
	for off := 0; off <= len(text); off++ {
		for _, idx := range [2]int{center + off, center - off - 1} {
			if idx >= 0 && idx < len(text) && text[idx] == ' ' {
				return idx
			}
		}
	}
	return -1
}
