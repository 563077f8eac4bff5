package models

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:  "Pending review",
	RequestStatusApproved: "Approved",
	RequestStatusRejected: "Rejected",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsTerminal reports whether the status can never change again.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

func (s RequestStatus) IsValid() bool {
	_, exist := requestStatusHumanName[s]
	return exist
}

type RequestKind string

const (
	RequestKindAccountSignup  RequestKind = "account_signup"
	RequestKindWorkModeChange RequestKind = "work_mode_change"
)

var requestKindHumanName = map[RequestKind]string{
	RequestKindAccountSignup:  "Account signup",
	RequestKindWorkModeChange: "Work mode change",
}

func (k RequestKind) ToHuman() string {
	if human, exist := requestKindHumanName[k]; exist {
		return human
	}
	return string(k)
}
