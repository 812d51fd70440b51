package dto

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminAuthResponse struct {
	Token       string `json:"token"`
	ExpiresIn   int64  `json:"expiresIn"`
	SearchToken string `json:"searchToken,omitempty"`
}

type TeacherAuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}
