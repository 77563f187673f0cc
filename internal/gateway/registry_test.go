package gateway

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisaanchat/internal/common"
)

func testRegistry() *Registry {
	return NewRegistry(zerolog.Nop())
}

func farmerConn(farmerID string) *Connection {
	return newConnection(&Principal{UserID: farmerID, Kind: KindFarmer}, 8)
}

func drain(t *testing.T, conn *Connection) []outbound {
	t.Helper()
	var frames []outbound
	for {
		select {
		case f := <-conn.Outbound():
			frames = append(frames, f)
		default:
			return frames
		}
	}
}

func TestRegistry_FarmerAutoJoinsPersonalRoom(t *testing.T) {
	r := testRegistry()
	conn := farmerConn("farmer-1")
	r.Register(conn)

	r.Broadcast(common.UserRoom("farmer-1"), "proactive_alert", "payload")

	frames := drain(t, conn)
	require.Len(t, frames, 1)
	assert.Equal(t, "proactive_alert", frames[0].Event)
}

func TestRegistry_AgentJoinsFarmerRooms(t *testing.T) {
	r := testRegistry()
	conn := newConnection(&Principal{
		UserID:   common.AIAgentID,
		Kind:     KindAgent,
		FarmerID: "farmer-1",
	}, 8)
	r.Register(conn)

	assert.True(t, r.InRoom(conn.ID, common.UserRoom("farmer-1")))
	assert.True(t, r.InRoom(conn.ID, common.AgentRoom("farmer-1")))
}

func TestRegistry_AdminJoinsNothingByDefault(t *testing.T) {
	r := testRegistry()
	conn := newConnection(&Principal{UserID: "admin-1", Kind: KindAdmin}, 8)
	r.Register(conn)

	assert.False(t, r.InRoom(conn.ID, common.AdminMonitoringRoom))

	require.NoError(t, r.Join(conn.ID, common.AdminMonitoringRoom))
	assert.True(t, r.InRoom(conn.ID, common.AdminMonitoringRoom))
}

func TestRegistry_DeregisterLeavesAllRooms(t *testing.T) {
	r := testRegistry()
	conn := farmerConn("farmer-1")
	r.Register(conn)
	require.NoError(t, r.Join(conn.ID, common.ConversationRoom("c1")))

	r.Deregister(conn.ID)

	assert.False(t, r.InRoom(conn.ID, common.UserRoom("farmer-1")))
	assert.False(t, r.InRoom(conn.ID, common.ConversationRoom("c1")))
	assert.Equal(t, 0, r.Snapshot().Connections)

	// Second deregister must be harmless.
	r.Deregister(conn.ID)
}

func TestRegistry_JoinUnknownConnection(t *testing.T) {
	r := testRegistry()
	err := r.Join("nope", "room")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestRegistry_BroadcastSkipsOtherRooms(t *testing.T) {
	r := testRegistry()
	one := farmerConn("farmer-1")
	two := farmerConn("farmer-2")
	r.Register(one)
	r.Register(two)

	r.Broadcast(common.UserRoom("farmer-1"), "new_message", nil)

	assert.Len(t, drain(t, one), 1)
	assert.Empty(t, drain(t, two))
}

func TestRegistry_SlowConnectionDropsFrames(t *testing.T) {
	r := testRegistry()
	conn := newConnection(&Principal{UserID: "farmer-1", Kind: KindFarmer}, 1)
	r.Register(conn)

	room := common.UserRoom("farmer-1")
	r.Broadcast(room, "one", nil)
	r.Broadcast(room, "two", nil) // dropped, buffer full

	frames := drain(t, conn)
	require.Len(t, frames, 1)
	assert.Equal(t, "one", frames[0].Event)
}

func TestRegistry_SnapshotAndOnlineFarmers(t *testing.T) {
	r := testRegistry()
	r.Register(farmerConn("farmer-1"))
	r.Register(farmerConn("farmer-1")) // second device
	r.Register(newConnection(&Principal{UserID: "admin-1", Kind: KindAdmin}, 8))
	r.Register(newConnection(&Principal{UserID: common.AIAgentID, Kind: KindAgent, FarmerID: "farmer-1"}, 8))

	s := r.Snapshot()
	assert.Equal(t, 4, s.Connections)
	assert.Equal(t, 2, s.Farmers)
	assert.Equal(t, 1, s.Admins)
	assert.Equal(t, 1, s.Agents)

	farmers := r.OnlineFarmers()
	assert.Equal(t, []string{"farmer-1"}, farmers)
}
