package models

// User is the signed-in customer as reported by the identity provider
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Credentials holds data needed for sign-up and sign-in
type Credentials struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

// AuthResponse is returned after a successful sign-up or sign-in
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
