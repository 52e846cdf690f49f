package model

// Session is the logged-in user's state. It is created on login, destroyed on logout
// and passed explicitly to every component that makes authenticated calls.
type Session struct {
	Token    string `json:"token" yaml:"token"`
	Username string `json:"username" yaml:"username"`
	Balance  int64  `json:"balance" yaml:"balance"`
}

// Active reports whether the session carries a token.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register form. ConfirmPassword never leaves the client.
type Registration struct {
	Username        string
	Password        string
	ConfirmPassword string
}
