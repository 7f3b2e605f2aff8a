package types

// User matches the users table structure.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Age     int    `json:"age"`
}

// RegisterUserRequest is the body of POST /register-user/.
// Age is a pointer so a missing age can be told apart from zero.
type RegisterUserRequest struct {
	Name    string `json:"name" validate:"required" example:"Ivan"`
	Surname string `json:"surname" validate:"required" example:"Petrov"`
	Age     *int   `json:"age" validate:"required,gte=0" example:"30"`
}

// AgeRange is an inclusive age filter.
type AgeRange struct {
	Min int
	Max int
}

const (
	DefaultMinAge = 0
	DefaultMaxAge = 99
)
