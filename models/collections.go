package models

// Collection names. They double as local table names and remote collection
// identifiers.
const (
	CollectionUsers                = "users"
	CollectionGroups               = "groups"
	CollectionUserGroups           = "user_groups"
	CollectionGroupMembers         = "group_members"
	CollectionMembers              = "members"
	CollectionCycles               = "cycles"
	CollectionMeetings             = "meetings"
	CollectionContributions        = "contributions"
	CollectionBeneficiaries        = "beneficiaries"
	CollectionSavings              = "savings"
	CollectionSavingEntries        = "saving_entries"
	CollectionBenefits             = "benefits"
	CollectionExpenses             = "expenses"
	CollectionPenalties            = "penalties"
	CollectionWelfares             = "welfares"
	CollectionWelfareMeetings      = "welfare_meetings"
	CollectionWelfareContributions = "welfare_contributions"
	CollectionWelfareBeneficiaries = "welfare_beneficiaries"
)
