package model

// UserStats is mutated only by the task-completion handler; everything
// else treats it as read-only.
type UserStats struct {
	TotalTasksCompleted int    `firestore:"totaltaskscompleted" json:"totalTasksCompleted"`
	CurrentStreak       int    `firestore:"currentstreak" json:"currentStreak"`
	LongestStreak       int    `firestore:"longeststreak" json:"longestStreak"`
	LastCompletionDate  string `firestore:"lastcompletiondate,omitempty" json:"lastCompletionDate,omitempty"` // YYYY-MM-DD
}

type User struct {
	UserID      string    `firestore:"userid,omitempty" json:"userId"`
	DisplayName string    `firestore:"displayname,omitempty" json:"displayName"`
	FCMTokens   []string  `firestore:"fcmtokens,omitempty" json:"fcmTokens,omitempty"`
	Stats       UserStats `firestore:"stats" json:"stats"`
}
