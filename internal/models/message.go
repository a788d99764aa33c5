package models

// Message represents a row in the PostgreSQL messages table.
type Message struct {
	ID                  int64  `json:"id"`
	AuthorID            int64  `json:"authorId"`
	Text                string `json:"text"`
	PostedAtEpochMillis int64  `json:"postedAtEpochMillis"`
}

// CreateMessageRequest is the JSON body for POST /messages.
type CreateMessageRequest struct {
	AuthorID            int64  `json:"authorId"`
	Text                string `json:"text"`
	PostedAtEpochMillis int64  `json:"postedAtEpochMillis"`
}

// UpdateMessageRequest is the JSON body for PATCH /messages/{message_id}.
// Only the text field is read; everything else in the body is ignored.
type UpdateMessageRequest struct {
	Text string `json:"text"`
}
