package model

// Group stats are denormalized and recomputed wholesale on every relevant
// task mutation; the last writer's snapshot wins.
type Group struct {
	GroupID        string   `firestore:"groupid,omitempty" json:"groupId"`
	Name           string   `firestore:"name,omitempty" json:"name"`
	MemberIDs      []string `firestore:"memberids,omitempty" json:"memberIds,omitempty"`
	TotalTasks     int      `firestore:"totaltasks" json:"totalTasks"`
	CompletedTasks int      `firestore:"completedtasks" json:"completedTasks"`
	CompletionRate int      `firestore:"completionrate" json:"completionRate"` // rounded percentage
}
