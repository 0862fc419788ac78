package models

// Amounts are stored in minor currency units (cents). Dates are unix
// milliseconds.

// User is an application account.
type User struct {
	SyncMeta
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Group is a savings group (chama).
type Group struct {
	SyncMeta
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	Currency  string `json:"currency"`
}

// UserGroup links an account to a group it can access.
type UserGroup struct {
	SyncMeta
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	Role    string `json:"role"`
}

// GroupMember records that an account participates in a group.
type GroupMember struct {
	SyncMeta
	GroupID  string `json:"groupId"`
	UserID   string `json:"userId"`
	JoinedAt int64  `json:"joinedAt"`
}

// Member is a person on a group's books. A member need not have an account.
type Member struct {
	SyncMeta
	GroupID  string `json:"groupId"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Position int    `json:"position"`
}

// Cycle is one merry-go-round rotation of a group.
type Cycle struct {
	SyncMeta
	GroupID            string `json:"groupId"`
	Number             int    `json:"number"`
	StartDate          int64  `json:"startDate"`
	EndDate            *int64 `json:"endDate,omitempty"`
	ContributionAmount int64  `json:"contributionAmount"`
}

// Meeting is a group meeting within a cycle.
type Meeting struct {
	SyncMeta
	GroupID string `json:"groupId"`
	CycleID string `json:"cycleId"`
	Date    int64  `json:"date"`
	Venue   string `json:"venue,omitempty"`
}
