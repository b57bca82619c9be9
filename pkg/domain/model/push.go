package model

// PushEvent is a Git push delivery. Field names and JSON tags follow the
// GitHub push payload so portal-forwarded payloads decode without mapping.
type PushEvent struct {
	Ref        string         `json:"ref"`
	Sender     PushSender     `json:"sender"`
	Commits    []Commit       `json:"commits"`
	Repository PushRepository `json:"repository"`
}

// PushSender is the account that pushed
type PushSender struct {
	Login string `json:"login"`
}

// PushRepository identifies the pushed repository
type PushRepository struct {
	FullName string `json:"full_name"`
}

// Commit is a single commit contained in a push
type Commit struct {
	ID      string       `json:"id"`
	Message string       `json:"message"`
	URL     string       `json:"url"`
	Author  CommitAuthor `json:"author"`
}

// CommitAuthor is the git author of a commit
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommitCount returns the number of commits in the push
func (e *PushEvent) CommitCount() int {
	return len(e.Commits)
}
