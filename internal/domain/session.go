package domain

import "time"

// State is the navigation step of a conversation. Idle has no stored session.
type State string

const (
	StateIdle           State = ""
	StateBrandChosen    State = "brand_chosen"    // brand menu shown
	StateCategoryChosen State = "category_chosen" // category menu of SelectedBrand shown
	StateProductChosen  State = "product_chosen"  // product menu of SelectedBrand/SelectedCategory shown
	StateChatting       State = "chatting"
)

type Session struct {
	UserID           int64     `json:"user_id"`
	State            State     `json:"state"`
	SelectedBrand    string    `json:"selected_brand,omitempty"`
	SelectedCategory string    `json:"selected_category,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewSession(userID int64, state State, now time.Time) *Session {
	return &Session{UserID: userID, State: state, UpdatedAt: now.UTC()}
}
