package common

// SenderType identifies who authored a message or owns a connection.
type SenderType string

const (
	SenderFarmer  SenderType = "farmer"
	SenderAdmin   SenderType = "admin"
	SenderAIAgent SenderType = "ai_agent"
)

// AIAgentID is the fixed sender id used for all automated-agent messages.
const AIAgentID = "kisaan_sahayak"

type MessageType string

const (
	MessageText         MessageType = "text"
	MessageImage        MessageType = "image"
	MessageVoice        MessageType = "voice"
	MessageVideo        MessageType = "video"
	MessageSystemAlert  MessageType = "system_alert"
	MessageWeatherAlert MessageType = "weather_alert"
	MessageSchemeAlert  MessageType = "scheme_alert"
)

// IsValid reports whether the message type is one of the known kinds.
func (mt MessageType) IsValid() bool {
	switch mt {
	case MessageText, MessageImage, MessageVoice, MessageVideo,
		MessageSystemAlert, MessageWeatherAlert, MessageSchemeAlert:
		return true
	}
	return false
}

// IsMedia reports whether the type carries a media URL payload.
func (mt MessageType) IsMedia() bool {
	return mt == MessageImage || mt == MessageVoice || mt == MessageVideo
}

type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// AlertType classifies proactive messages. Required whenever a message is
// marked proactive.
type AlertType string

const (
	AlertWelcome     AlertType = "welcome"
	AlertWeather     AlertType = "weather"
	AlertScheme      AlertType = "government_scheme"
	AlertCropStage   AlertType = "crop_stage"
	AlertPestWarning AlertType = "pest_warning"
	AlertEmergency   AlertType = "emergency"
)

func (at AlertType) IsValid() bool {
	switch at {
	case AlertWelcome, AlertWeather, AlertScheme, AlertCropStage, AlertPestWarning, AlertEmergency:
		return true
	}
	return false
}
