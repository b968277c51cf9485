package model

// User is the public projection returned to clients. The stored credential
// record never leaves the repository layer.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is the persisted sign-up record. Passwords are stored as bcrypt
// hashes, never plaintext.
type Credential struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

func (c Credential) User() User {
	return User{Name: c.Name, Email: c.Email}
}
