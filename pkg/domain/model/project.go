package model

import "github.com/m-mizutani/contribmap/pkg/domain/types"

// ProjectEvent is emitted by the portal when a project is submitted or approved
type ProjectEvent struct {
	ProjectAuthor types.UserID `json:"project_author"` // Portal user ID of the submitter
	ProjectUser   string       `json:"project_user"`   // Repository owner login
	ProjectName   string       `json:"project_name"`   // Repository name
}

// FullName returns "owner/name" of the project's repository
func (e *ProjectEvent) FullName() string {
	return e.ProjectUser + "/" + e.ProjectName
}
