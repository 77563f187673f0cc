package common

import "strings"

// MediaFileType represents the broad media class of an uploaded file.
type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeVoice MediaFileType = "voice"
	MediaFileTypeVideo MediaFileType = "video"
)

// String returns the string representation
func (mft MediaFileType) String() string {
	return string(mft)
}

// IsValid checks if the media file type is valid
func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVoice || mft == MediaFileTypeVideo
}

// MessageType maps the media class onto the message type it produces.
func (mft MediaFileType) MessageType() MessageType {
	switch mft {
	case MediaFileTypeVoice:
		return MessageVoice
	case MediaFileTypeVideo:
		return MessageVideo
	default:
		return MessageImage
	}
}

// DetectFileType classifies a MIME type into image, voice or video.
// Unknown types report ok=false so callers can reject the upload.
func DetectFileType(mimeType string) (MediaFileType, bool) {
	lowerMimeType := strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(lowerMimeType, "image/"):
		return MediaFileTypeImage, true
	case strings.HasPrefix(lowerMimeType, "audio/"):
		return MediaFileTypeVoice, true
	case strings.HasPrefix(lowerMimeType, "video/"):
		return MediaFileTypeVideo, true
	}
	return "", false
}
