package gateway

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kisaanchat/internal/gateway/mocks"
)

func newTestReassembler(t *testing.T, submitter MediaSubmitter) *Reassembler {
	t.Helper()
	r := NewReassembler(submitter, 1024, 0, zerolog.Nop())
	t.Cleanup(r.Stop)
	return r
}

func chunk(uploadID string, index, total int, payload string) ChunkInput {
	return ChunkInput{
		UploadID:   uploadID,
		ChunkIndex: index,
		Total:      total,
		Payload:    []byte(payload),
		MimeType:   "image/jpeg",
	}
}

func TestReassembler_OutOfOrderChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockMediaSubmitter(ctrl)
	r := newTestReassembler(t, submitter)
	ctx := context.Background()

	submitter.EXPECT().
		Submit(gomock.Any(), []byte("abcdef"), "image/jpeg", "farmer-1").
		Return("http://media/xyz", nil)

	progress, result, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 2, 3, "ef"))
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, 1, progress.Received)
	assert.Equal(t, 33, progress.Percent)

	progress, result, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 3, "ab"))
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, 2, progress.Received)

	progress, result, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 1, 3, "cd"))
	require.NoError(t, err)
	require.Nil(t, progress)
	require.NotNil(t, result)
	assert.Equal(t, "http://media/xyz", result.URL)
	assert.Equal(t, int64(6), result.Size)
	assert.Equal(t, 0, r.SessionCount())

	// A stale retry after completion is rejected, not restarted.
	_, _, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 3, "ab"))
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestReassembler_DuplicateChunkIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockMediaSubmitter(ctrl)
	r := newTestReassembler(t, submitter)
	ctx := context.Background()

	submitter.EXPECT().
		Submit(gomock.Any(), []byte("abcd"), "image/jpeg", "farmer-1").
		Return("http://media/xyz", nil)

	_, _, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 2, "ab"))
	require.NoError(t, err)

	// Client retry of the same index: overwrites, does not complete.
	progress, result, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 2, "ab"))
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, 1, progress.Received)

	_, result, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 1, 2, "cd"))
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestReassembler_RejectsBadChunks(t *testing.T) {
	tests := []struct {
		name  string
		input ChunkInput
	}{
		{"missing upload id", chunk("", 0, 2, "ab")},
		{"zero total", chunk("u1", 0, 0, "ab")},
		{"negative total", chunk("u1", 0, -3, "ab")},
		{"index below range", chunk("u1", -1, 2, "ab")},
		{"index at total", chunk("u1", 2, 2, "ab")},
		{"empty payload", chunk("u1", 0, 2, "")},
	}

	ctrl := gomock.NewController(t)
	r := newTestReassembler(t, mocks.NewMockMediaSubmitter(ctrl))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := r.AddChunk(context.Background(), "conn-1", "farmer-1", tt.input)
			assert.ErrorIs(t, err, ErrBadChunk)
		})
	}
}

func TestReassembler_TotalChangedMidUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestReassembler(t, mocks.NewMockMediaSubmitter(ctrl))
	ctx := context.Background()

	_, _, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 3, "ab"))
	require.NoError(t, err)

	_, _, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 1, 4, "cd"))
	assert.ErrorIs(t, err, ErrBadChunk)
}

func TestReassembler_SizeCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockMediaSubmitter(ctrl)
	r := NewReassembler(submitter, 4, 0, zerolog.Nop())
	t.Cleanup(r.Stop)

	_, _, err := r.AddChunk(context.Background(), "conn-1", "farmer-1", chunk("u1", 0, 2, "abcdef"))
	assert.ErrorIs(t, err, ErrBadChunk)
	assert.Equal(t, 0, r.SessionCount())
}

func TestReassembler_SubmitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockMediaSubmitter(ctrl)
	r := newTestReassembler(t, submitter)

	submitter.EXPECT().
		Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("gridfs down"))

	_, result, err := r.AddChunk(context.Background(), "conn-1", "farmer-1", chunk("u1", 0, 1, "ab"))
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, r.SessionCount())
}

func TestReassembler_UploadIDHasSingleOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestReassembler(t, mocks.NewMockMediaSubmitter(ctrl))
	ctx := context.Background()

	_, _, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 2, "ab"))
	require.NoError(t, err)

	// Another connection reusing a live upload ID must not open a second
	// session under the same ID.
	_, _, err = r.AddChunk(ctx, "conn-2", "farmer-2", chunk("u1", 1, 2, "cd"))
	assert.ErrorIs(t, err, ErrOwnership)
	assert.Equal(t, 1, r.SessionCount())

	// The owner is unaffected and can still finish.
	progress, _, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 2, "ab"))
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Received)
}

func TestReassembler_TombstonesAgeOutWithoutIdleReaping(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestReassembler(t, mocks.NewMockMediaSubmitter(ctrl))
	ctx := context.Background()

	_, _, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 2, "ab"))
	require.NoError(t, err)
	require.NoError(t, r.Cancel("conn-1", "u1"))

	// Idle reclamation is off (idleTimeout 0), yet old tombstones still
	// age out while fresh ones keep rejecting stale chunks.
	r.mu.Lock()
	r.terminated[sessionKey("conn-9", "u9")] = time.Now().Add(-2 * tombstoneTTL)
	r.mu.Unlock()

	r.reapIdle()

	r.mu.Lock()
	_, stale := r.terminated[sessionKey("conn-9", "u9")]
	_, fresh := r.terminated[sessionKey("conn-1", "u1")]
	r.mu.Unlock()
	assert.False(t, stale)
	assert.True(t, fresh)

	_, _, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 1, 2, "cd"))
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestReassembler_CancelOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestReassembler(t, mocks.NewMockMediaSubmitter(ctrl))
	ctx := context.Background()

	_, _, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 2, "ab"))
	require.NoError(t, err)

	// Someone else's connection cannot cancel it.
	assert.ErrorIs(t, r.Cancel("conn-2", "u1"), ErrOwnership)

	require.NoError(t, r.Cancel("conn-1", "u1"))
	assert.ErrorIs(t, r.Cancel("conn-1", "u1"), ErrUnknownSession)
}

func TestReassembler_CancelOwnedOnDisconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestReassembler(t, mocks.NewMockMediaSubmitter(ctrl))
	ctx := context.Background()

	_, _, err := r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 0, 2, "ab"))
	require.NoError(t, err)
	_, _, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u2", 0, 2, "cd"))
	require.NoError(t, err)
	_, _, err = r.AddChunk(ctx, "conn-2", "farmer-2", chunk("u3", 0, 2, "ef"))
	require.NoError(t, err)

	assert.Equal(t, 2, r.CancelOwned("conn-1"))
	assert.Equal(t, 1, r.SessionCount())
	assert.ErrorIs(t, r.Cancel("conn-1", "u1"), ErrUnknownSession)

	// Chunks for either cancelled session are rejected afterwards.
	_, _, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u1", 1, 2, "gh"))
	assert.ErrorIs(t, err, ErrUnknownSession)
	_, _, err = r.AddChunk(ctx, "conn-1", "farmer-1", chunk("u2", 1, 2, "ij"))
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestAssembleOrdersByIndex(t *testing.T) {
	sess := &uploadSession{
		total: 3,
		chunks: map[int][]byte{
			1: []byte("cd"),
			0: []byte("ab"),
			2: []byte("ef"),
		},
		bytes: 6,
	}
	assert.True(t, bytes.Equal([]byte("abcdef"), assemble(sess)))
}
