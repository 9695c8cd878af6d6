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


package core

import (
	"fmt"
	"net/url"
)

// ValidateSource validates a Source descriptor according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Type must be a known SourceType
//   - document and media sources need a file reference
//   - url sources need an http(s) URL
//   - text sources need non-empty content
//
// Validation failures are reported before the source enters the pipeline and
// do not count against its retry budget.
func ValidateSource(source *Source) error {
	if source == nil {
		return fmt.Errorf("%w: source is nil", ErrInvalidSource)
	}

	if source.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSource, ErrMissingSourceID)
	}

	switch source.Type {
	case SourceTypeDocument, SourceTypeMedia:
		if source.FilePath == "" {
			return fmt.Errorf("%w: %w", ErrInvalidSource, ErrMissingFilePath)
		}
	case SourceTypeURL:
		if !isHTTPURL(source.URL) {
			return fmt.Errorf("%w: %w", ErrInvalidSource, ErrInvalidURL)
		}
	case SourceTypeText:
		if source.Content == "" {
			return fmt.Errorf("%w: %w", ErrInvalidSource, ErrEmptyContent)
		}
	default:
		return fmt.Errorf("%w: %w: %d", ErrInvalidSource, ErrInvalidSourceType, source.Type)
	}

	return nil
}

// ValidateEntryKey validates that all components of an EntryKey are present.
func ValidateEntryKey(key EntryKey) error {
	if key.Tenant == "" {
		return fmt.Errorf("%w: tenant is empty", ErrInvalidKey)
	}
	if key.SourceID == "" {
		return fmt.Errorf("%w: source id is empty", ErrInvalidKey)
	}
	if key.Session == "" {
		return fmt.Errorf("%w: session is empty", ErrInvalidKey)
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
