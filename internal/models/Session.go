package models

// Session is the single record the client keeps on the device: whoever is
// signed in, the driver profile registered from this device, and the API token.
type Session struct {
	User   *User   `json:"user,omitempty"`
	Driver *Driver `json:"driver,omitempty"`
	Token  string  `json:"token,omitempty"`
}
