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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSource indicates a Source descriptor failed validation.
	ErrInvalidSource = errors.New("invalid source")

	// ErrInvalidSourceType indicates an unrecognized source type.
	ErrInvalidSourceType = errors.New("invalid source type")

	// ErrMissingSourceID indicates the source ID field is empty.
	ErrMissingSourceID = errors.New("source id cannot be empty")

	// ErrMissingFilePath indicates a file-backed source has no file reference.
	ErrMissingFilePath = errors.New("file path cannot be empty")

	// ErrInvalidURL indicates a url source has a missing or non-http(s) URL.
	ErrInvalidURL = errors.New("url must be a valid http or https address")

	// ErrEmptyContent indicates a text source has no content.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidKey indicates an EntryKey with a missing component.
	ErrInvalidKey = errors.New("invalid entry key")
)
