package dto

import (
	"time"

	"github.com/webdrive/webdrive_api/internal/models"
)

// FileResponse is the metadata view of a record; the inline payload is only
// returned when downloading a single file.
type FileResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy string    `json:"uploadedBy"`
}

type FileDownloadResponse struct {
	FileResponse
	Data string `json:"data"`
}

type ListFilesResponse struct {
	Files []FileResponse `json:"files"`
	Total int            `json:"total"`
}

func NewFileResponse(record models.FileRecord) FileResponse {
	return FileResponse{
		ID:         record.ID.String(),
		Name:       record.Name,
		Type:       record.Type,
		Size:       record.Size,
		UploadedAt: record.UploadedAt,
		UploadedBy: record.UploadedBy,
	}
}

func NewFileDownloadResponse(record models.FileRecord) FileDownloadResponse {
	return FileDownloadResponse{
		FileResponse: NewFileResponse(record),
		Data:         record.Data,
	}
}

func NewListFilesResponse(records []models.FileRecord, total int) ListFilesResponse {
	files := make([]FileResponse, 0, len(records))
	for _, record := range records {
		files = append(files, NewFileResponse(record))
	}

	return ListFilesResponse{
		Files: files,
		Total: total,
	}
}
