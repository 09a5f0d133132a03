package seed

import (
	"staffdir/config"
	"staffdir/internal/logger"
	. "staffdir/internal/models"

	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	employees := []Employee{
		{
			UniqueID:    "EMP-001",
			Name:        "Ann Carter",
			Email:       "ann.carter@example.com",
			MobileNo:    "9876543210",
			Designation: "HR Manager",
			Gender:      GenderFemale,
			Course:      "MBA",
		}, {
			UniqueID:    "EMP-002",
			Name:        "Bob Fletcher",
			Email:       "bob.fletcher@example.com",
			MobileNo:    "9123456780",
			Designation: "Developer",
			Gender:      GenderMale,
			Course:      "MCA",
		}, {
			UniqueID:    "EMP-003",
			Name:        "Grace Osei",
			Email:       "grace.osei@example.com",
			MobileNo:    "9012345678",
			Designation: "Sales Lead",
			Gender:      GenderFemale,
			Course:      "BSC",
		},
	}

	for _, employee := range employees {
		var existing Employee
		if err := db.First(&existing, "unique_id = ?", employee.UniqueID).Error; err == nil {
			log.Info("Employee already exists", "uniqueId", employee.UniqueID)
			continue
		}
		log.Info("Seeding employee", "uniqueId", employee.UniqueID)
		if err := db.Create(&employee).Error; err != nil {
			log.Er("failed to create employee", err, "uniqueId", employee.UniqueID)
		}
	}

	return nil
}
