package requestapimodels

type StatusStatsView struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type WorkModeStatsView struct {
	Total       int `json:"total"`
	InOffice    int `json:"in_office"`
	SemiRemote  int `json:"semi_remote"`
	FullyRemote int `json:"fully_remote"`
}

type PendingCountView struct {
	Count int `json:"count"`
}
