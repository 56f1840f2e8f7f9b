package entity

type Profile struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Profile   *Profile `json:"profile,omitempty"`
}
