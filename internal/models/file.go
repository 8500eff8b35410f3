package models

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRecord is one stored file. The byte content is kept inline in Data as a
// data URI, so a record alone is enough to reconstruct the original file.
// JSON field names are part of the persisted record layout.
type FileRecord struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Data       string    `json:"data"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy string    `json:"uploadedBy"`
}

// Upload is an incoming file before it becomes a FileRecord.
type Upload struct {
	Name  string
	Size  int64
	Type  string
	Entry io.Reader
}

const (
	dataURIScheme    = "data:"
	dataURIB64Marker = ";base64,"
)

// EncodeDataURI packs bytes into the standard data-URI form:
// data:<media type>;base64,<payload>.
func EncodeDataURI(mediaType string, data []byte) string {
	return dataURIScheme + mediaType + dataURIB64Marker + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI reverses EncodeDataURI, returning the declared media type and
// the raw bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, dataURIScheme) {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(uri, dataURIScheme)

	marker := strings.Index(rest, dataURIB64Marker)
	if marker < 0 {
		return "", nil, fmt.Errorf("missing base64 payload marker")
	}

	mediaType := rest[:marker]
	payload, err := base64.StdEncoding.DecodeString(rest[marker+len(dataURIB64Marker):])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	return mediaType, payload, nil
}
