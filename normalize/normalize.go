// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package normalize

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/lore/core"
)

// undetermined is the BCP 47 tag for content whose language cannot be
// established (empty documents).
const undetermined = "und"

// Document cleans raw extracted text and derives counting metadata and a
// content fingerprint. It is pure: no I/O, no mutation of the source, and
// identical input always yields an identical fingerprint.
func Document(rawText string, source *core.Source) *core.NormalizedDocument {
	content := strings.TrimSpace(rawText)

	return &core.NormalizedDocument{
		SourceID:     source.ID,
		SourceName:   source.Name,
		SourceType:   source.Type,
		Content:      content,
		WordCount:    len(strings.Fields(content)),
		CharCount:    utf8.RuneCountInString(content),
		Fingerprint:  core.FingerprintContent(content),
		Language:     detectLanguage(content),
		NormalizedAt: time.Now().UTC(),
	}
}

// detectLanguage tags the document language. Detection is intentionally
// shallow: empty content is undetermined, everything else is tagged English.
// A real detector can replace this without changing the document shape.
func detectLanguage(content string) string {
	if content == "" {
		return undetermined
	}
	return "en"
}
