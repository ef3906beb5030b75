package domain

// Review is a sanitized review ready to be stored. ReviewText is already
// HTML-escaped.
type Review struct {
	ProductID  int64  `json:"product_id"`
	UserID     int64  `json:"user_id"`
	Rating     int64  `json:"rating"`
	ReviewText string `json:"review_text"`
}

// Validation messages, reported in this order.
const (
	MsgInvalidProductID  = "Invalid or missing product_id. It must be an integer."
	MsgInvalidUserID     = "Invalid or missing user_id. It must be an integer."
	MsgInvalidRating     = "Invalid or missing rating. It must be a integer number between 1 and 5."
	MsgInvalidReviewText = "Invalid review_text. It must be a string."
)
