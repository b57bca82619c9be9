package model

import "time"

// PopupMessage is a map annotation: a coordinate and an HTML body
type PopupMessage struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Msg string  `json:"msg"`
}

// PopupRecord is a popup as kept by the annotation sink
type PopupRecord struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Popup     *PopupMessage `json:"popup"`
}
