package message

// Message is a text post authored by an account. The ID is assigned by the
// store on first save; PostedBy references the author's account ID and is
// checked against the account store at creation time only. TimePostedEpoch
// is caller-supplied and opaque to the service.
type Message struct {
	ID              int64  `json:"messageId"`
	PostedBy        int64  `json:"postedBy"`
	MessageText     string `json:"messageText"`
	TimePostedEpoch int64  `json:"timePostedEpoch"`
}
