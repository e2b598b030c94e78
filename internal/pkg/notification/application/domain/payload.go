package notification

import "encoding/json"

// Payload is the JSON document posted to a push service for a new message.
type Payload struct {
	Title   string      `json:"title"`
	Body    string      `json:"body"`
	Icon    string      `json:"icon"`
	Badge   string      `json:"badge"`
	Vibrate []int       `json:"vibrate"`
	Data    PayloadData `json:"data"`
}

type PayloadData struct {
	URL string `json:"url"`
}

func NewMessagePayload(senderUsername, text string) Payload {
	return Payload{
		Title:   "New Message",
		Body:    senderUsername + ": " + text,
		Icon:    "/icons/icon-192x192.png",
		Badge:   "/icons/icon-72x72.png",
		Vibrate: []int{100, 50, 100},
		Data:    PayloadData{URL: "/"},
	}
}

func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}
