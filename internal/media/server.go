// Package media serves reassembled upload payloads back out over HTTP.
// Chat messages carry /media/{fileId} URLs pointing here.
package media

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"kisaanchat/internal/dbmongo"
)

type HTTPServer struct {
	storage *dbmongo.MediaStorage
	logger  zerolog.Logger
}

func NewHTTPServer(storage *dbmongo.MediaStorage, logger zerolog.Logger) *HTTPServer {
	return &HTTPServer{
		storage: storage,
		logger:  logger,
	}
}

// Router mounts the media routes.
func (s *HTTPServer) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/media/{fileId}", s.serveFile).Methods(http.MethodGet)
	router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	return router
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	reader, file, err := s.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Warn().Err(err).Str("file_id", fileID).Msg("media stream interrupted")
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
