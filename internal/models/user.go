package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleUser   Role = "user" // patients carry the "user" role
)

// User represents a user in the system. Doctor-specific fields stay empty
// for patients and admins.
type User struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role     Role   `gorm:"size:20;default:'user'" json:"role"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Verified bool   `gorm:"default:false" json:"verified"`

	// Fields for doctors
	Specialty       string  `gorm:"size:100" json:"specialty,omitempty"`
	Qualifications  string  `gorm:"size:255" json:"qualifications,omitempty"`
	Experience      int     `json:"experience,omitempty"`
	Approved        bool    `gorm:"default:false" json:"approved"`
	ConsultationFee float64 `json:"consultationFee,omitempty"`
	Bio             string  `gorm:"type:text" json:"bio,omitempty"`
	ProfileImage    string  `json:"profileImage,omitempty"`

	// Relations (not always preloaded)
	RefreshTokens       []RefreshToken  `gorm:"foreignKey:UserID" json:"-"`
	DoctorAppointments  []Appointment   `gorm:"foreignKey:DoctorID" json:"-"`
	PatientAppointments []Appointment   `gorm:"foreignKey:PatientID" json:"-"`
	Availability        []Availability  `gorm:"foreignKey:DoctorID" json:"-"`
	PatientRecords      []PatientRecord `gorm:"foreignKey:PatientID" json:"-"`
	Notifications       []Notification  `gorm:"foreignKey:RecipientID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	Phone           string    `json:"phone,omitempty"`
	Address         string    `json:"address,omitempty"`
	Verified        bool      `json:"verified"`
	Specialty       string    `json:"specialty,omitempty"`
	Qualifications  string    `json:"qualifications,omitempty"`
	Experience      int       `json:"experience,omitempty"`
	Approved        bool      `json:"approved"`
	ConsultationFee float64   `json:"consultationFee,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImage    string    `json:"profileImage,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Phone:           u.Phone,
		Address:         u.Address,
		Verified:        u.Verified,
		Specialty:       u.Specialty,
		Qualifications:  u.Qualifications,
		Experience:      u.Experience,
		Approved:        u.Approved,
		ConsultationFee: u.ConsultationFee,
		Bio:             u.Bio,
		ProfileImage:    u.ProfileImage,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
