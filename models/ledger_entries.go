package models

// Contribution is a member's payment at a meeting.
type Contribution struct {
	SyncMeta
	GroupID   string `json:"groupId"`
	MeetingID string `json:"meetingId"`
	MemberID  string `json:"memberId"`
	Amount    int64  `json:"amount"`
}

// Beneficiary is the member receiving the pot at a meeting.
type Beneficiary struct {
	SyncMeta
	GroupID   string `json:"groupId"`
	MeetingID string `json:"meetingId"`
	MemberID  string `json:"memberId"`
	Amount    int64  `json:"amount"`
}

// Saving is a member's savings account inside a group.
type Saving struct {
	SyncMeta
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
	Balance  int64  `json:"balance"`
}

// SavingEntry is a deposit or withdrawal against a [Saving].
type SavingEntry struct {
	SyncMeta
	GroupID   string `json:"groupId"`
	SavingID  string `json:"savingId"`
	MeetingID string `json:"meetingId,omitempty"`
	Amount    int64  `json:"amount"`
	Kind      string `json:"kind"`
}

// Benefit is a payout to a member outside the rotation.
type Benefit struct {
	SyncMeta
	GroupID     string `json:"groupId"`
	MemberID    string `json:"memberId"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}

// Expense is money spent by the group.
type Expense struct {
	SyncMeta
	GroupID     string `json:"groupId"`
	MeetingID   string `json:"meetingId,omitempty"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// Penalty is a fine charged to a member.
type Penalty struct {
	SyncMeta
	GroupID   string `json:"groupId"`
	MemberID  string `json:"memberId"`
	MeetingID string `json:"meetingId,omitempty"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason"`
	Paid      bool   `json:"paid"`
}
