package dbmongo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kisaanchat/internal/common"
)

// MediaStorage is the media-submission path: reassembled uploads land in
// GridFS and come back out through the media HTTP server.
type MediaStorage struct {
	gridFS  *gridfs.Bucket
	baseURL string
}

func NewMediaStorage(mongoClient *MongoClient, publicBaseURL string) *MediaStorage {
	return &MediaStorage{
		gridFS:  mongoClient.GridFS,
		baseURL: publicBaseURL,
	}
}

type MediaFile struct {
	ID         string               `json:"id"`          // GridFS ObjectID
	Filename   string               `json:"filename"`    // Original filename
	Size       int64                `json:"size"`        // File size in bytes
	FileType   common.MediaFileType `json:"file_type"`   // image, voice or video
	MimeType   string               `json:"mime_type"`   // Full MIME type
	UploadedBy string               `json:"uploaded_by"` // User ID who uploaded
	UploadedAt time.Time            `json:"uploaded_at"` // Upload timestamp
}

// Submit stores a complete media payload and returns the public URL the
// chat message will carry. This is the hand-off target of the gateway's
// upload reassembler.
func (ms *MediaStorage) Submit(ctx context.Context, payload []byte, mimeType, ownerID string) (string, error) {
	fileType, ok := common.DetectFileType(mimeType)
	if !ok {
		return "", fmt.Errorf("unsupported media type %q", mimeType)
	}

	filename := fmt.Sprintf("%s_%d.%s", ownerID, time.Now().UnixNano(), fileType)
	file, err := ms.UploadFile(ctx, filename, mimeType, ownerID, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/media/%s", ms.baseURL, file.ID), nil
}

func (ms *MediaStorage) UploadFile(ctx context.Context, filename, mimeType, uploaderID string, content io.Reader) (*MediaFile, error) {
	fileType, ok := common.DetectFileType(mimeType)
	if !ok {
		return nil, fmt.Errorf("unsupported media type %q", mimeType)
	}

	metadata := bson.M{
		"file_type":   fileType.String(),
		"mime_type":   mimeType,
		"uploaded_by": uploaderID,
		"uploaded_at": time.Now(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := ms.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer stream.Close()

	size, err := io.Copy(stream, content)
	if err != nil {
		return nil, fmt.Errorf("file copy failed: %w", err)
	}

	return &MediaFile{
		ID:         stream.FileID.(primitive.ObjectID).Hex(),
		Filename:   filename,
		Size:       size,
		FileType:   fileType,
		MimeType:   mimeType,
		UploadedBy: uploaderID,
		UploadedAt: time.Now(),
	}, nil
}

func (ms *MediaStorage) DownloadFile(ctx context.Context, fileID string) (io.Reader, *MediaFile, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid file ID: %w", err)
	}

	stream, err := ms.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}

	fileInfo := stream.GetFile()
	var metadata bson.M
	if fileInfo.Metadata != nil {
		_ = bson.Unmarshal(fileInfo.Metadata, &metadata)
	}

	mediaFile := &MediaFile{
		ID:         fileID,
		Filename:   fileInfo.Name,
		Size:       fileInfo.Length,
		FileType:   common.MediaFileType(getStringFromMap(metadata, "file_type")),
		MimeType:   getStringFromMap(metadata, "mime_type"),
		UploadedBy: getStringFromMap(metadata, "uploaded_by"),
		UploadedAt: fileInfo.UploadDate,
	}

	return stream, mediaFile, nil
}

func (ms *MediaStorage) DeleteFile(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("invalid file ID: %w", err)
	}
	return ms.gridFS.Delete(objectID)
}

// Helper function for metadata extraction
func getStringFromMap(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
