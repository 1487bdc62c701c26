package models

// FarmProduce is a catalog entry returned by the marketplace produce search.
type FarmProduce struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a marketplace account returned by the user search.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// DisplayName prefers an explicit name, falling back to first and last names.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}
