package models

// Account represents a row in the PostgreSQL accounts table.
//
// The password is stored and compared in plaintext: this service performs a
// bare credential-match lookup and never issues sessions or tokens, so there
// is nothing to hash against. It is serialized on responses because the
// boundary echoes the full record back to the caller.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials is the JSON body for POST /register and POST /login.
// An "id" field in the body, if present, is ignored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
