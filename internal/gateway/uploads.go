package gateway

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MediaSubmitter receives a fully reassembled payload and returns the
// public URL the chat message will carry.
type MediaSubmitter interface {
	Submit(ctx context.Context, payload []byte, mimeType, ownerID string) (string, error)
}

// Progress reports one accepted chunk back to the uploader.
type Progress struct {
	UploadID string `json:"uploadId"`
	Received int    `json:"received"`
	Total    int    `json:"total"`
	Percent  int    `json:"percent"`
}

// Result reports a finished reassembly.
type Result struct {
	UploadID string `json:"uploadId"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type uploadSession struct {
	id        string
	ownerConn string
	ownerUser string
	total     int
	mimeType  string
	chunks    map[int][]byte
	bytes     int64
	updatedAt time.Time
}

// Reassembler collects out-of-order chunks into complete media payloads.
// Sessions are keyed per connection; a disconnect discards everything the
// connection had in flight.
type Reassembler struct {
	mu       sync.Mutex
	sessions map[string]*uploadSession // key: connID + "/" + uploadID

	// terminated remembers finished and cancelled sessions so a stale
	// retry chunk is rejected instead of silently opening a new session.
	// Entries age out after tombstoneTTL.
	terminated map[string]time.Time

	submitter   MediaSubmitter
	maxBytes    int64
	idleTimeout time.Duration
	logger      zerolog.Logger

	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

func NewReassembler(submitter MediaSubmitter, maxBytes int64, idleTimeout time.Duration, logger zerolog.Logger) *Reassembler {
	r := &Reassembler{
		sessions:    make(map[string]*uploadSession),
		terminated:  make(map[string]time.Time),
		submitter:   submitter,
		maxBytes:    maxBytes,
		idleTimeout: idleTimeout,
		logger:      logger,
		shutdownCh:  make(chan struct{}),
	}
	go r.reapLoop()
	return r
}

// tombstoneTTL bounds how long a terminated session keeps rejecting stale
// chunks. Reaped on its own schedule so the map stays bounded even when
// idle reclamation is disabled.
const tombstoneTTL = 10 * time.Minute

// Stop halts the idle reaper. In-flight sessions are left to their owners.
func (r *Reassembler) Stop() {
	r.shutdownOnce.Do(func() {
		close(r.shutdownCh)
	})
}

func sessionKey(connID, uploadID string) string {
	return connID + "/" + uploadID
}

// ChunkInput is one inbound chunk after payload decoding.
type ChunkInput struct {
	UploadID   string
	ChunkIndex int
	Total      int
	Payload    []byte
	MimeType   string
}

// AddChunk accepts one chunk. The first chunk of an upload ID opens the
// session; the session's chunk count and MIME type are fixed by that first
// chunk. Resending an index overwrites the previous copy, so client
// retries converge instead of erroring. When every index has arrived the
// payload is assembled, handed to the submitter, and the session removed.
//
// Exactly one of Progress or Result is non-nil on success.
func (r *Reassembler) AddChunk(ctx context.Context, connID, userID string, in ChunkInput) (*Progress, *Result, error) {
	if in.UploadID == "" {
		return nil, nil, fmt.Errorf("%w: upload id is required", ErrBadChunk)
	}
	if in.Total <= 0 {
		return nil, nil, fmt.Errorf("%w: total chunks must be positive", ErrBadChunk)
	}
	if in.ChunkIndex < 0 || in.ChunkIndex >= in.Total {
		return nil, nil, fmt.Errorf("%w: chunk index %d outside [0,%d)", ErrBadChunk, in.ChunkIndex, in.Total)
	}
	if len(in.Payload) == 0 {
		return nil, nil, fmt.Errorf("%w: empty chunk payload", ErrBadChunk)
	}

	r.mu.Lock()

	key := sessionKey(connID, in.UploadID)
	if _, done := r.terminated[key]; done {
		r.mu.Unlock()
		return nil, nil, ErrUnknownSession
	}
	sess, ok := r.sessions[key]
	if !ok {
		// An upload ID is single-owner: a live session under another
		// connection means this chunk is not the owner's.
		for _, other := range r.sessions {
			if other.id == in.UploadID {
				r.mu.Unlock()
				return nil, nil, ErrOwnership
			}
		}
		sess = &uploadSession{
			id:        in.UploadID,
			ownerConn: connID,
			ownerUser: userID,
			total:     in.Total,
			mimeType:  in.MimeType,
			chunks:    make(map[int][]byte, in.Total),
		}
		r.sessions[key] = sess
	}

	if in.Total != sess.total {
		r.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: total chunks changed mid-upload", ErrBadChunk)
	}

	if prev, dup := sess.chunks[in.ChunkIndex]; dup {
		sess.bytes -= int64(len(prev))
	}
	sess.chunks[in.ChunkIndex] = in.Payload
	sess.bytes += int64(len(in.Payload))
	sess.updatedAt = time.Now()

	if r.maxBytes > 0 && sess.bytes > r.maxBytes {
		delete(r.sessions, key)
		r.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: upload exceeds %d byte limit", ErrBadChunk, r.maxBytes)
	}

	if len(sess.chunks) < sess.total {
		progress := &Progress{
			UploadID: sess.id,
			Received: len(sess.chunks),
			Total:    sess.total,
			Percent:  len(sess.chunks) * 100 / sess.total,
		}
		r.mu.Unlock()
		return progress, nil, nil
	}

	// Complete: take the session out before the (possibly slow) submit.
	delete(r.sessions, key)
	r.terminated[key] = time.Now()
	payload := assemble(sess)
	r.mu.Unlock()

	url, err := r.submitter.Submit(ctx, payload, sess.mimeType, sess.ownerUser)
	if err != nil {
		return nil, nil, fmt.Errorf("media submission failed: %w", err)
	}

	return nil, &Result{
		UploadID: sess.id,
		URL:      url,
		Size:     int64(len(payload)),
		MimeType: sess.mimeType,
	}, nil
}

func assemble(sess *uploadSession) []byte {
	indices := make([]int, 0, len(sess.chunks))
	for i := range sess.chunks {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	var buf bytes.Buffer
	buf.Grow(int(sess.bytes))
	for _, i := range indices {
		buf.Write(sess.chunks[i])
	}
	return buf.Bytes()
}

// Cancel discards one session. Only the owning connection may cancel it.
func (r *Reassembler) Cancel(connID, uploadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(connID, uploadID)
	if _, ok := r.sessions[key]; !ok {
		// A session under another connection with this upload ID means
		// the caller is not the owner.
		for _, sess := range r.sessions {
			if sess.id == uploadID {
				return ErrOwnership
			}
		}
		return ErrUnknownSession
	}

	delete(r.sessions, key)
	r.terminated[key] = time.Now()
	return nil
}

// CancelOwned discards every session the connection has open. Called on
// disconnect; returns how many sessions were dropped.
func (r *Reassembler) CancelOwned(connID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for key, sess := range r.sessions {
		if sess.ownerConn == connID {
			delete(r.sessions, key)
			r.terminated[key] = time.Now()
			dropped++
		}
	}
	return dropped
}

// SessionCount reports open sessions, for stats.
func (r *Reassembler) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Reassembler) reapLoop() {
	interval := tombstoneTTL / 2
	if r.idleTimeout > 0 && r.idleTimeout/2 < interval {
		interval = r.idleTimeout / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.shutdownCh:
			return
		case <-ticker.C:
			r.reapIdle()
		}
	}
}

func (r *Reassembler) reapIdle() {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.idleTimeout > 0 {
		cutoff := now.Add(-r.idleTimeout)
		for key, sess := range r.sessions {
			if sess.updatedAt.Before(cutoff) {
				delete(r.sessions, key)
				r.terminated[key] = now
				r.logger.Warn().
					Str("upload_id", sess.id).
					Str("user_id", sess.ownerUser).
					Int("chunks_received", len(sess.chunks)).
					Msg("reclaimed idle upload session")
			}
		}
	}

	tombCutoff := now.Add(-tombstoneTTL)
	for key, at := range r.terminated {
		if at.Before(tombCutoff) {
			delete(r.terminated, key)
		}
	}
}
