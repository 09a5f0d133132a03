package models

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

type Employee struct {
	BaseUUIDModel
	UniqueID    string `gorm:"type:varchar(64);not null;index" json:"uniqueId"`
	Name        string `gorm:"type:varchar(120);not null"      json:"name"`
	Email       string `gorm:"type:varchar(254);not null"      json:"email"`
	MobileNo    string `gorm:"type:varchar(10);not null"       json:"mobileNo"`
	Designation string `gorm:"type:varchar(120)"               json:"designation"`
	Gender      string `gorm:"type:varchar(10)"                json:"gender"`
	Course      string `gorm:"type:varchar(120)"               json:"course"`
	// Image holds the base64-encoded photo, never a file path.
	Image string `gorm:"type:text" json:"image,omitempty"`
}

// EmployeePayload is a submitted record before validation. A nil field was
// omitted from the request; a non-nil empty string was sent empty and still
// goes through validation.
type EmployeePayload struct {
	UniqueID    *string `json:"uniqueId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	MobileNo    *string `json:"mobileNo,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Course      *string `json:"course,omitempty"`
	Image       *string `json:"image,omitempty"`
}
