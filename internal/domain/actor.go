package domain

// Actor is the messaging identity behind an inbound message.
type Actor struct {
	ID       int64
	ChatID   int64
	Username string
}

func (a Actor) DisplayName() string {
	if a.Username == "" {
		return "No name"
	}
	return a.Username
}
