package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ActionKind discriminates POST bodies
type ActionKind string

const (
	ActionComment ActionKind = "comment"
	ActionRate    ActionKind = "rate"
)

// Action is a decoded POST body. Concrete types: *CommentAction,
// *RateAction, *UnknownAction.
type Action interface {
	Kind() ActionKind
}

// ArticleRef is an article id that accepts a JSON number or a numeric
// string. Zero means absent.
type ArticleRef int64

// UnmarshalJSON implements json.Unmarshaler
func (r *ArticleRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*r = 0
			return nil
		}
		data = []byte(s)
	}

	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid article_id %q", string(data))
	}
	*r = ArticleRef(id)
	return nil
}

// CommentAction is the body of action "comment"
type CommentAction struct {
	ArticleID ArticleRef `json:"article_id"`
	Author    *string    `json:"author"`
	Content   string     `json:"content"`
}

// Kind implements Action
func (*CommentAction) Kind() ActionKind { return ActionComment }

// RateAction is the body of action "rate"
type RateAction struct {
	ArticleID ArticleRef   `json:"article_id"`
	UserID    *string      `json:"user_id"`
	Rating    *json.Number `json:"rating"`
}

// Kind implements Action
func (*RateAction) Kind() ActionKind { return ActionRate }

// UnknownAction carries an unrecognized or missing action name
type UnknownAction struct {
	Name string
}

// Kind implements Action
func (a *UnknownAction) Kind() ActionKind { return ActionKind(a.Name) }

// ParseAction decodes a POST body into its concrete action.
// An empty body decodes as an object with no action.
func ParseAction(body []byte) (Action, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	switch ActionKind(envelope.Action) {
	case ActionComment:
		var a CommentAction
		if err := json.Unmarshal(body, &a); err != nil {
			return nil, err
		}
		return &a, nil
	case ActionRate:
		var a RateAction
		if err := json.Unmarshal(body, &a); err != nil {
			return nil, err
		}
		return &a, nil
	default:
		return &UnknownAction{Name: envelope.Action}, nil
	}
}
