package client

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Detail is the decoded "detail" member of an error response. The backend
// sends one of three shapes:
//
//	{"detail": "Invalid verification code"}                    -> StringDetail
//	{"detail": {"msg": "Code expired"}}                        -> FieldError
//	{"detail": [{"loc": ["body","email"], "msg": "invalid"}]}  -> FieldErrorList
type Detail interface {
	// Message renders the detail as a single display string.
	Message() string
	isDetail()
}

type StringDetail string

func (d StringDetail) Message() string { return string(d) }
func (StringDetail) isDetail()         {}

// FieldError is one validation failure. Loc is the path of the offending
// field, when the server provides it.
type FieldError struct {
	Loc  []string
	Msg  string
	Type string
}

func (d FieldError) Message() string { return d.Msg }
func (FieldError) isDetail()         {}

type FieldErrorList []FieldError

// Message joins the individual messages with ", ".
func (d FieldErrorList) Message() string {
	msgs := make([]string, 0, len(d))
	for _, fe := range d {
		if fe.Msg != "" {
			msgs = append(msgs, fe.Msg)
		}
	}
	return strings.Join(msgs, ", ")
}
func (FieldErrorList) isDetail() {}

// ParseDetail extracts the detail of an error body. It returns nil when the
// body is not JSON or carries no usable detail.
func ParseDetail(body []byte) Detail {
	if !gjson.ValidBytes(body) {
		return nil
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case !detail.Exists():
		return nil
	case detail.Type == gjson.String:
		return StringDetail(detail.String())
	case detail.IsArray():
		list := FieldErrorList{}
		detail.ForEach(func(_, item gjson.Result) bool {
			if fe, ok := parseFieldError(item); ok {
				list = append(list, fe)
			}
			return true
		})
		if len(list) == 0 {
			return nil
		}
		return list
	case detail.IsObject():
		if fe, ok := parseFieldError(detail); ok {
			return fe
		}
	}
	return nil
}

func parseFieldError(item gjson.Result) (FieldError, bool) {
	if item.Type == gjson.String {
		return FieldError{Msg: item.String()}, item.String() != ""
	}
	if !item.IsObject() {
		return FieldError{}, false
	}

	msg := item.Get("msg")
	if !msg.Exists() {
		msg = item.Get("message")
	}
	if msg.String() == "" {
		return FieldError{}, false
	}

	fe := FieldError{Msg: msg.String(), Type: item.Get("type").String()}
	for _, part := range item.Get("loc").Array() {
		fe.Loc = append(fe.Loc, part.String())
	}
	return fe, true
}
