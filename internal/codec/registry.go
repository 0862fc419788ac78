package codec

import "github.com/MKhiriev/go-chama-sync/models"

// SyncOrder is the fixed order in which collections are synced. A collection
// only references collections listed before it.
var SyncOrder = []string{
	models.CollectionUsers,
	models.CollectionGroups,
	models.CollectionUserGroups,
	models.CollectionGroupMembers,
	models.CollectionMembers,
	models.CollectionCycles,
	models.CollectionMeetings,
	models.CollectionContributions,
	models.CollectionBeneficiaries,
	models.CollectionSavings,
	models.CollectionSavingEntries,
	models.CollectionBenefits,
	models.CollectionExpenses,
	models.CollectionPenalties,
	models.CollectionWelfares,
	models.CollectionWelfareMeetings,
	models.CollectionWelfareContributions,
	models.CollectionWelfareBeneficiaries,
}

func groupRef(id string) Reference {
	return Reference{Column: "group_id", Collection: models.CollectionGroups, ID: id}
}

func memberRef(id string) Reference {
	return Reference{Column: "member_id", Collection: models.CollectionMembers, ID: id}
}

func meetingRef(id string) Reference {
	return Reference{Column: "meeting_id", Collection: models.CollectionMeetings, ID: id}
}

func welfareMeetingRef(id string) Reference {
	return Reference{Column: "welfare_meeting_id", Collection: models.CollectionWelfareMeetings, ID: id}
}

var (
	Users = Codec[models.User]{
		Collection: models.CollectionUsers,
	}

	Groups = Codec[models.Group]{
		Collection: models.CollectionGroups,
		Scoped:     true,
		SoftDelete: true,
		GroupOf:    func(v models.Group) string { return v.ID },
	}

	UserGroups = Codec[models.UserGroup]{
		Collection:   models.CollectionUserGroups,
		Scoped:       true,
		Dependencies: []string{models.CollectionUsers, models.CollectionGroups},
		GroupOf:      func(v models.UserGroup) string { return v.GroupID },
		Refs: func(v models.UserGroup) []Reference {
			return []Reference{
				{Column: "user_id", Collection: models.CollectionUsers, ID: v.UserID},
				groupRef(v.GroupID),
			}
		},
	}

	GroupMembers = Codec[models.GroupMember]{
		Collection:   models.CollectionGroupMembers,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionUsers, models.CollectionGroups},
		GroupOf:      func(v models.GroupMember) string { return v.GroupID },
		Refs: func(v models.GroupMember) []Reference {
			return []Reference{
				groupRef(v.GroupID),
				{Column: "user_id", Collection: models.CollectionUsers, ID: v.UserID},
			}
		},
	}

	Members = Codec[models.Member]{
		Collection:   models.CollectionMembers,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups},
		GroupOf:      func(v models.Member) string { return v.GroupID },
		Refs: func(v models.Member) []Reference {
			return []Reference{groupRef(v.GroupID)}
		},
	}

	Cycles = Codec[models.Cycle]{
		Collection:   models.CollectionCycles,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups},
		GroupOf:      func(v models.Cycle) string { return v.GroupID },
		Refs: func(v models.Cycle) []Reference {
			return []Reference{groupRef(v.GroupID)}
		},
	}

	Meetings = Codec[models.Meeting]{
		Collection:   models.CollectionMeetings,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionCycles},
		GroupOf:      func(v models.Meeting) string { return v.GroupID },
		Refs: func(v models.Meeting) []Reference {
			return []Reference{
				groupRef(v.GroupID),
				{Column: "cycle_id", Collection: models.CollectionCycles, ID: v.CycleID},
			}
		},
	}

	Contributions = Codec[models.Contribution]{
		Collection:   models.CollectionContributions,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionMeetings, models.CollectionMembers},
		GroupOf:      func(v models.Contribution) string { return v.GroupID },
		Refs: func(v models.Contribution) []Reference {
			return []Reference{groupRef(v.GroupID), meetingRef(v.MeetingID), memberRef(v.MemberID)}
		},
	}

	Beneficiaries = Codec[models.Beneficiary]{
		Collection:   models.CollectionBeneficiaries,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionMeetings, models.CollectionMembers},
		GroupOf:      func(v models.Beneficiary) string { return v.GroupID },
		Refs: func(v models.Beneficiary) []Reference {
			return []Reference{groupRef(v.GroupID), meetingRef(v.MeetingID), memberRef(v.MemberID)}
		},
	}

	Savings = Codec[models.Saving]{
		Collection:   models.CollectionSavings,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionMembers},
		GroupOf:      func(v models.Saving) string { return v.GroupID },
		Refs: func(v models.Saving) []Reference {
			return []Reference{groupRef(v.GroupID), memberRef(v.MemberID)}
		},
	}

	SavingEntries = Codec[models.SavingEntry]{
		Collection:   models.CollectionSavingEntries,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionSavings, models.CollectionMeetings},
		GroupOf:      func(v models.SavingEntry) string { return v.GroupID },
		Refs: func(v models.SavingEntry) []Reference {
			return []Reference{
				groupRef(v.GroupID),
				{Column: "saving_id", Collection: models.CollectionSavings, ID: v.SavingID},
				meetingRef(v.MeetingID),
			}
		},
	}

	Benefits = Codec[models.Benefit]{
		Collection:   models.CollectionBenefits,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionMembers},
		GroupOf:      func(v models.Benefit) string { return v.GroupID },
		Refs: func(v models.Benefit) []Reference {
			return []Reference{groupRef(v.GroupID), memberRef(v.MemberID)}
		},
	}

	Expenses = Codec[models.Expense]{
		Collection:   models.CollectionExpenses,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionMeetings},
		GroupOf:      func(v models.Expense) string { return v.GroupID },
		Refs: func(v models.Expense) []Reference {
			return []Reference{groupRef(v.GroupID), meetingRef(v.MeetingID)}
		},
	}

	Penalties = Codec[models.Penalty]{
		Collection:   models.CollectionPenalties,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionMembers, models.CollectionMeetings},
		GroupOf:      func(v models.Penalty) string { return v.GroupID },
		Refs: func(v models.Penalty) []Reference {
			return []Reference{groupRef(v.GroupID), memberRef(v.MemberID), meetingRef(v.MeetingID)}
		},
	}

	Welfares = Codec[models.Welfare]{
		Collection:   models.CollectionWelfares,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups},
		GroupOf:      func(v models.Welfare) string { return v.GroupID },
		Refs: func(v models.Welfare) []Reference {
			return []Reference{groupRef(v.GroupID)}
		},
	}

	WelfareMeetings = Codec[models.WelfareMeeting]{
		Collection:   models.CollectionWelfareMeetings,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionWelfares},
		GroupOf:      func(v models.WelfareMeeting) string { return v.GroupID },
		Refs: func(v models.WelfareMeeting) []Reference {
			return []Reference{
				groupRef(v.GroupID),
				{Column: "welfare_id", Collection: models.CollectionWelfares, ID: v.WelfareID},
			}
		},
	}

	WelfareContributions = Codec[models.WelfareContribution]{
		Collection:   models.CollectionWelfareContributions,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionWelfareMeetings, models.CollectionMembers},
		GroupOf:      func(v models.WelfareContribution) string { return v.GroupID },
		Refs: func(v models.WelfareContribution) []Reference {
			return []Reference{groupRef(v.GroupID), welfareMeetingRef(v.WelfareMeetingID), memberRef(v.MemberID)}
		},
	}

	WelfareBeneficiaries = Codec[models.WelfareBeneficiary]{
		Collection:   models.CollectionWelfareBeneficiaries,
		Scoped:       true,
		SoftDelete:   true,
		Dependencies: []string{models.CollectionGroups, models.CollectionWelfareMeetings, models.CollectionMembers},
		GroupOf:      func(v models.WelfareBeneficiary) string { return v.GroupID },
		Refs: func(v models.WelfareBeneficiary) []Reference {
			return []Reference{groupRef(v.GroupID), welfareMeetingRef(v.WelfareMeetingID), memberRef(v.MemberID)}
		},
	}
)

// All returns the descriptors of every collection in [SyncOrder].
func All() []Descriptor {
	return []Descriptor{
		Users,
		Groups,
		UserGroups,
		GroupMembers,
		Members,
		Cycles,
		Meetings,
		Contributions,
		Beneficiaries,
		Savings,
		SavingEntries,
		Benefits,
		Expenses,
		Penalties,
		Welfares,
		WelfareMeetings,
		WelfareContributions,
		WelfareBeneficiaries,
	}
}

// Position returns the index of collection in [SyncOrder], or -1.
func Position(collection string) int {
	for i, name := range SyncOrder {
		if name == collection {
			return i
		}
	}
	return -1
}
