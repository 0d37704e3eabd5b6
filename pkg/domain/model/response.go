package model

// CollectorResponse is the decoded reply of the collector's upload endpoint.
// The collector answers {"error": bool, "message": string}; any other body
// shape is tolerated and kept raw with Parsed=false.
type CollectorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`

	Parsed bool   `json:"-"` // false when the body was not valid JSON
	Raw    []byte `json:"-"` // original body, kept for unparsed warnings
}
