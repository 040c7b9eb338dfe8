package domain

import (
	"encoding/json"
	"fmt"
)

// Action - переход, запрошенный администратором.
type Action string

const (
	ActionStartGame          Action = "startGame"
	ActionGenerateQuestion   Action = "generateQuestion"
	ActionEndGame            Action = "endGame"
	ActionReset              Action = "reset"
	ActionUpdateParticipants Action = "updateParticipants"
)

// UpdateRequest is the wire payload of the transition endpoint: the admin's full
// intended document plus the transient action and category fields.
type UpdateRequest struct {
	Action Action
	// Category carries the selected question text for generateQuestion.
	Category string

	doc *Document
}

// DecodeUpdateRequest splits the body into the transient fields and the document.
func DecodeUpdateRequest(data []byte) (*UpdateRequest, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	req := &UpdateRequest{}
	if raw, ok := doc.Extra["action"]; ok {
		if err := json.Unmarshal(raw, &req.Action); err != nil {
			return nil, fmt.Errorf("%w: action must be a string", ErrInvalidRequest)
		}
	}
	if raw, ok := doc.Extra["category"]; ok {
		if err := json.Unmarshal(raw, &req.Category); err != nil {
			return nil, fmt.Errorf("%w: category must be a string", ErrInvalidRequest)
		}
	}
	delete(doc.Extra, "action")
	delete(doc.Extra, "category")
	if len(doc.Extra) == 0 {
		doc.Extra = nil
	}
	doc.Normalize()
	req.doc = &doc
	return req, nil
}

// NewUpdateRequest builds a request around an existing document.
func NewUpdateRequest(action Action, category string, doc *Document) *UpdateRequest {
	if doc == nil {
		doc = DefaultDocument()
	}
	return &UpdateRequest{Action: action, Category: category, doc: doc}
}

// Document returns the document to persist. It never contains action or category.
func (r *UpdateRequest) Document() *Document {
	if r.doc == nil {
		r.doc = DefaultDocument()
	}
	return r.doc
}

// UnmarshalJSON allows binding the request with encoding/json decoders.
func (r *UpdateRequest) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeUpdateRequest(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}
