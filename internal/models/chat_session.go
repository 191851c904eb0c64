package models

import "encoding/json"

// ChatSession is the sole persisted conversation record. ID is a numeric
// string allocated by the store and immutable once assigned. URLID is the
// shareable slug derived from the first user message; it is NULL until the
// first persist assigns one, so the unique index only constrains sessions
// that actually carry a slug.
type ChatSession struct {
	ID           string  `gorm:"primaryKey;size:32" json:"id"`
	URLID        *string `gorm:"uniqueIndex;size:255" json:"urlId,omitempty"`
	MessagesJSON string  `gorm:"type:text;not null" json:"-"`
	Description  string  `gorm:"size:512" json:"description,omitempty"`
	Timestamp    string  `gorm:"size:64;not null" json:"timestamp"`
}

// Messages decodes the stored message log in conversation order.
func (s *ChatSession) Messages() ([]Message, error) {
	if s.MessagesJSON == "" {
		return nil, nil
	}
	var msgs []Message
	if err := json.Unmarshal([]byte(s.MessagesJSON), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SetMessages replaces the stored message log. A nil slice is stored as an
// empty array so a hydrated session never decodes to null.
func (s *ChatSession) SetMessages(msgs []Message) error {
	if msgs == nil {
		msgs = []Message{}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	s.MessagesJSON = string(data)
	return nil
}

// URLIDValue returns the slug or "" when none has been assigned.
func (s *ChatSession) URLIDValue() string {
	if s.URLID == nil {
		return ""
	}
	return *s.URLID
}
