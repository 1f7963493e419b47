package workouts

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type AuthStatus struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

type LoginResult struct {
	User User `json:"user"`
}

// UserData is the combined bootstrap payload of the user-data endpoint.
type UserData struct {
	Routines       []Routine
	Exercises      []Exercise
	MuscleGroups   []string
	Equipment      []string
	VariationTypes []VariationType
}
