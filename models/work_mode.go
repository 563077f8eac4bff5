package models

type WorkMode string

const (
	WorkModeInOffice    WorkMode = "in_office"
	WorkModeSemiRemote  WorkMode = "semi_remote"
	WorkModeFullyRemote WorkMode = "fully_remote"
)

var workModeHumanName = map[WorkMode]string{
	WorkModeInOffice:    "In Office",
	WorkModeSemiRemote:  "Semi Remote",
	WorkModeFullyRemote: "Fully Remote",
}

func (m WorkMode) ToHuman() string {
	if human, exist := workModeHumanName[m]; exist {
		return human
	}
	return string(m)
}

func (m WorkMode) IsValid() bool {
	_, exist := workModeHumanName[m]
	return exist
}

func AllWorkModes() []WorkMode {
	return []WorkMode{WorkModeInOffice, WorkModeSemiRemote, WorkModeFullyRemote}
}
