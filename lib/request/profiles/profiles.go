package profiles

import (
	"os"

	"attendance-backend/models"

	"github.com/gotify/configor"
	log "github.com/sirupsen/logrus"
)

type table struct {
	Profiles map[string]models.EmployeeProfile `yaml:"profiles"`
}

// Load reads the staffing profile table used to pre-fill signup payloads.
// A missing or empty file falls back to the built-in seed table.
func Load(path string) map[string]models.EmployeeProfile {
	if _, err := os.Stat(path); err != nil {
		return Default()
	}
	cfg := table{}
	if err := configor.New(&configor.Config{}).Load(&cfg, path); err != nil {
		log.WithError(err).
			WithField("path", path).
			Warn("profile table load failed, using built-in table")
		return Default()
	}
	if len(cfg.Profiles) == 0 {
		return Default()
	}
	return cfg.Profiles
}

// Default is the seed staffing table for the pilot team.
func Default() map[string]models.EmployeeProfile {
	return map[string]models.EmployeeProfile{
		"testuser": {
			Name:       "Test User",
			Email:      "testuser@company.com",
			Role:       models.UserRoleEmployee,
			Department: "Engineering",
			Position:   "AI Engineer",
			WorkMode:   models.WorkModeInOffice,
			HireDate:   "2023-01-15",
		},
		"testadmin": {
			Name:       "Test Admin",
			Email:      "testadmin@company.com",
			Role:       models.UserRoleSuperAdmin,
			Department: "Management",
			Position:   "System Administrator",
			WorkMode:   models.WorkModeInOffice,
			HireDate:   "2023-01-01",
		},
		"john.doe": {
			Name:       "John Doe",
			Email:      "john.doe@company.com",
			Role:       models.UserRoleEmployee,
			Department: "Engineering",
			Position:   "Senior AI Engineer",
			WorkMode:   models.WorkModeSemiRemote,
			HireDate:   "2022-06-10",
		},
		"jane.smith": {
			Name:       "Jane Smith",
			Email:      "jane.smith@company.com",
			Role:       models.UserRoleEmployee,
			Department: "Design",
			Position:   "UI/UX Designer",
			WorkMode:   models.WorkModeFullyRemote,
			HireDate:   "2022-08-20",
		},
		"mike.johnson": {
			Name:       "Mike Johnson",
			Email:      "mike.johnson@company.com",
			Role:       models.UserRoleEmployee,
			Department: "Sales",
			Position:   "Sales Manager",
			WorkMode:   models.WorkModeInOffice,
			HireDate:   "2022-03-15",
		},
		"sarah.williams": {
			Name:       "Sarah Williams",
			Email:      "sarah.williams@company.com",
			Role:       models.UserRoleEmployee,
			Department: "Marketing",
			Position:   "Marketing Specialist",
			WorkMode:   models.WorkModeSemiRemote,
			HireDate:   "2023-02-01",
		},
		"david.brown": {
			Name:       "David Brown",
			Email:      "david.brown@company.com",
			Role:       models.UserRoleEmployee,
			Department: "Engineering",
			Position:   "DevOps Engineer",
			WorkMode:   models.WorkModeFullyRemote,
			HireDate:   "2022-11-05",
		},
		"emily.davis": {
			Name:       "Emily Davis",
			Email:      "emily.davis@company.com",
			Role:       models.UserRoleEmployee,
			Department: "HR",
			Position:   "HR Coordinator",
			WorkMode:   models.WorkModeInOffice,
			HireDate:   "2023-04-12",
		},
		"hrmanager": {
			Name:       "HR Manager",
			Email:      "hrmanager@company.com",
			Role:       models.UserRoleManager,
			Department: "HR",
			Position:   "HR Manager",
			WorkMode:   models.WorkModeInOffice,
			HireDate:   "2022-03-01",
		},
		"techmanager": {
			Name:       "Tech Manager",
			Email:      "techmanager@company.com",
			Role:       models.UserRoleManager,
			Department: "Engineering",
			Position:   "Engineering Manager",
			WorkMode:   models.WorkModeInOffice,
			HireDate:   "2022-02-15",
		},
		"salesmanager": {
			Name:       "Sales Manager",
			Email:      "salesmanager@company.com",
			Role:       models.UserRoleManager,
			Department: "Sales",
			Position:   "Sales Manager",
			WorkMode:   models.WorkModeInOffice,
			HireDate:   "2022-01-20",
		},
	}
}
