package domain

import (
	"encoding/json"
	"strconv"
	"unicode/utf8"

	"github.com/utafrali/review-service/pkg/validator"
)

// Kind is the JSON type of a raw value.
type Kind string

const (
	KindAbsent Kind = ""
	KindNull   Kind = "null"
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindArray  Kind = "array"
	KindObject Kind = "object"
)

func kindOf(raw []byte) Kind {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return KindString
		case '{':
			return KindObject
		case '[':
			return KindArray
		case 't', 'f':
			return KindBool
		case 'n':
			return KindNull
		default:
			return KindNumber
		}
	}
	return KindAbsent
}

// TextField is an optional request field that must be a string when given.
type TextField struct {
	Kind  Kind
	Value string
}

// Present reports whether the field was given with a non-null value.
func (f TextField) Present() bool {
	return f.Kind != KindAbsent && f.Kind != KindNull
}

// ReviewSubmission is a request body as sent by the client. Missing or
// wrongly typed fields are kept so that Validate can report them.
type ReviewSubmission struct {
	ProductID  NumericField
	UserID     NumericField
	Rating     NumericField
	ReviewText TextField
}

// ParseReviewSubmission reads a JSON object. A body that is not a JSON
// object, is not valid UTF-8 or escapes an unpaired UTF-16 surrogate yields a
// submission with every field absent. Keys are matched exactly; for duplicate
// keys the last one wins.
func ParseReviewSubmission(body []byte) ReviewSubmission {
	var sub ReviewSubmission
	if !utf8.Valid(body) || hasLoneSurrogate(body) {
		return sub
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return sub
	}

	sub.ProductID = parseNumeric(fields["product_id"])
	sub.UserID = parseNumeric(fields["user_id"])
	sub.Rating = parseNumeric(fields["rating"])

	if raw, ok := fields["review_text"]; ok {
		sub.ReviewText.Kind = kindOf(raw)
		if sub.ReviewText.Kind == KindString {
			_ = json.Unmarshal(raw, &sub.ReviewText.Value)
		}
	}
	return sub
}

// hasLoneSurrogate reports whether body contains a \uD800-\uDFFF escape that
// is not part of a high-low surrogate pair. encoding/json would silently
// replace such an escape with U+FFFD.
func hasLoneSurrogate(body []byte) bool {
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			continue
		}
		if i+1 >= len(body) || body[i+1] != 'u' {
			i++
			continue
		}
		r, ok := escapedUnit(body, i)
		if !ok {
			i++
			continue
		}
		switch {
		case r >= 0xD800 && r <= 0xDBFF:
			low, ok := escapedUnit(body, i+6)
			if !ok || low < 0xDC00 || low > 0xDFFF {
				return true
			}
			i += 11
		case r >= 0xDC00 && r <= 0xDFFF:
			return true
		default:
			i += 5
		}
	}
	return false
}

// escapedUnit decodes the \uXXXX escape starting at body[i].
func escapedUnit(body []byte, i int) (rune, bool) {
	if i+6 > len(body) || body[i] != '\\' || body[i+1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(body[i+2:i+6]), 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// submissionRules mirrors a submission for rule checking. Nil pointers are
// missing or non-numeric fields.
type submissionRules struct {
	ProductID  *float64 `validate:"required"`
	UserID     *float64 `validate:"required"`
	Rating     *float64 `validate:"required,gte=1,lte=5"`
	ReviewText Kind     `validate:"omitempty,eq=string"`
}

var ruleMessages = []struct {
	field   string
	message string
}{
	{"ProductID", MsgInvalidProductID},
	{"UserID", MsgInvalidUserID},
	{"Rating", MsgInvalidRating},
	{"ReviewText", MsgInvalidReviewText},
}

// Validate checks every rule and returns one message per failed rule, in
// the order product_id, user_id, rating, review_text. Rating bounds are
// checked on the value as sent, before truncation.
func (s ReviewSubmission) Validate() []string {
	rules := submissionRules{
		ProductID: s.ProductID.ptr(),
		UserID:    s.UserID.ptr(),
		Rating:    s.Rating.ptr(),
	}
	if s.ReviewText.Present() {
		rules.ReviewText = s.ReviewText.Kind
	}

	err := validator.Validate(rules)
	if err == nil {
		return nil
	}
	valErr, ok := err.(*validator.ValidationError)
	if !ok {
		// validator returns other errors only for non-struct input.
		panic(err)
	}

	var msgs []string
	for _, rm := range ruleMessages {
		if valErr.Failed(rm.field) {
			msgs = append(msgs, rm.message)
		}
	}
	return msgs
}

// Review converts a validated submission into a storable Review: numbers
// are truncated toward zero and the text is HTML-escaped, defaulting to "".
func (s ReviewSubmission) Review() *Review {
	return &Review{
		ProductID:  s.ProductID.Int(),
		UserID:     s.UserID.Int(),
		Rating:     s.Rating.Int(),
		ReviewText: EscapeHTML(s.ReviewText.Value),
	}
}
