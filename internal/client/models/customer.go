package models

// Placeholder values sent with every signup for identity fields the admin
// form does not collect. The backend requires them; the original console
// hard-codes them, so we keep them as documented defaults rather than
// inventing collection forms for them.
const (
	DefaultSignupGender   = "مرد"
	DefaultSignupBirthday = "2000-01-01"
	DefaultSignupAddress  = "-"
)

// CustomerSignup is the request body for POST /customers.
type CustomerSignup struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
	Password   string `json:"password"`
	Gender     string `json:"gender"`
	Birthday   string `json:"birthday"`
	Address    string `json:"address"`
}

// Customer is the record the backend returns after signup.
type Customer struct {
	ID         string `json:"id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
}

func (c Customer) EntityID() string { return c.ID }
