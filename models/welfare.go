package models

// Welfare is a group welfare fund.
type Welfare struct {
	SyncMeta
	GroupID       string `json:"groupId"`
	Name          string `json:"name"`
	TargetAmount  int64  `json:"targetAmount"`
	PerMemberRate int64  `json:"perMemberRate"`
}

// WelfareMeeting is a meeting held for a welfare fund.
type WelfareMeeting struct {
	SyncMeta
	GroupID   string `json:"groupId"`
	WelfareID string `json:"welfareId"`
	Date      int64  `json:"date"`
}

// WelfareContribution is a member's payment into a welfare fund.
type WelfareContribution struct {
	SyncMeta
	GroupID          string `json:"groupId"`
	WelfareMeetingID string `json:"welfareMeetingId"`
	MemberID         string `json:"memberId"`
	Amount           int64  `json:"amount"`
}

// WelfareBeneficiary is a member paid out of a welfare fund.
type WelfareBeneficiary struct {
	SyncMeta
	GroupID          string `json:"groupId"`
	WelfareMeetingID string `json:"welfareMeetingId"`
	MemberID         string `json:"memberId"`
	Amount           int64  `json:"amount"`
	Reason           string `json:"reason,omitempty"`
}
