package response

// MessageResponse is the standard wrapper for mutation acknowledgements.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// Message creates an acknowledgement body.
func Message(msg string) MessageResponse {
	return MessageResponse{Msg: msg}
}
