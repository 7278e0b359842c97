package types

// LocationBinding fixes the geofence and time window a message is bound to.
// It is created once at send time and embedded verbatim in the stored
// message; the nonce must be unique per message so that two messages sharing
// a shared secret and coordinates never derive the same key.
type LocationBinding struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusM     float64 `json:"radius_m"`
	WindowStart int64   `json:"window_start"` // epoch milliseconds
	WindowEnd   int64   `json:"window_end"`   // epoch milliseconds
	Nonce       []byte  `json:"nonce"`
}
