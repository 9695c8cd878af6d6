package core

import "encoding/base64"

// EncodeContent encodes normalized text for storage.
// Entries hold content in this encoded form only.
func EncodeContent(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeContent decodes stored entry content back to text.
func DecodeContent(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
