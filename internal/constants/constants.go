package constants

// Session
const (
	SessionCookieName = "task_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	DefaultPageSize = 15
	MinPageSize     = 1
	MaxPageSize     = 100
)

// CompletedStatusID is the synthetic status choice offered by the search
// form. It is never stored; selecting it filters on completed = true instead
// of a status reference.
const CompletedStatusID int64 = -1

// Dashboard windows, in days.
const (
	CompletionsWindowDays = 30
	UpcomingDueDays       = 3
)

// Labels provisioned for every new account.
var (
	DefaultStatusNames   = []string{"To Do", "In Progress", "On Hold", "Archived"}
	DefaultPriorityNames = []string{"Low", "Medium", "High"}
	DefaultTagNames      = []string{"Home Task"}
)

// AI task generation
const MaxAIGeneratedTasks = 20
