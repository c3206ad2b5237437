package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToMonitors(msgType string, payload interface{})
}

// MsgSelectionAudit is sent to monitors after every selection
const MsgSelectionAudit = "selection_audit"
