package authoriser

import "github.com/workhive/job-portal/internal/middleware"

// Action is something a caller wants to do to a resource.
type Action string

const (
	ActionJobCreate         Action = "job.create"
	ActionJobUpdate         Action = "job.update"
	ActionJobDelete         Action = "job.delete"
	ActionJobClose          Action = "job.close"
	ActionJobReopen         Action = "job.reopen"
	ActionJobViewApplicants Action = "job.view_applicants"
	ActionCompanyManage     Action = "company.manage"
	ActionUserDelete        Action = "user.delete"
)

// Resource describes ownership of the thing being acted on. OwnerID is
// the user id recorded as the resource creator; empty means ownerless.
type Resource struct {
	OwnerID string
}

type Authoriser struct{}

func NewAuthoriser() Authoriser {
	return Authoriser{}
}

// Can decides whether the caller may perform action on resource. Admins
// may do anything. Recruiters may create jobs and manage the jobs they
// created. Nobody else gets a write capability.
func (a Authoriser) Can(caller *middleware.UserJWT, action Action, resource Resource) bool {
	if caller == nil {
		return false
	}
	if caller.IsAdmin {
		return true
	}
	switch action {
	case ActionJobCreate:
		return caller.IsRecruiter
	case ActionJobUpdate, ActionJobDelete, ActionJobClose, ActionJobReopen, ActionJobViewApplicants:
		return caller.IsRecruiter && resource.OwnerID != "" && resource.OwnerID == caller.UserID
	case ActionCompanyManage, ActionUserDelete:
		return false
	}
	return false
}
