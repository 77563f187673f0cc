package common

import "fmt"

// Room names shared between the realtime gateway and the message router.
// Farmers live in their personal room, the agent in a farmer-scoped room,
// and admins opt into a single monitoring room.
const AdminMonitoringRoom = "admin_monitoring"

func ConversationRoom(conversationID string) string {
	return fmt.Sprintf("conversation:%s", conversationID)
}

func UserRoom(farmerID string) string {
	return fmt.Sprintf("user:%s", farmerID)
}

func AgentRoom(farmerID string) string {
	return fmt.Sprintf("agent:%s", farmerID)
}
