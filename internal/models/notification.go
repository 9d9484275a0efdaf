package models

// NotificationType identifies the lifecycle event a notification describes.
type NotificationType string

const (
	NotifyAppointmentCreated     NotificationType = "appointment_created"
	NotifyAppointmentConfirmed   NotificationType = "appointment_confirmed"
	NotifyAppointmentCancelled   NotificationType = "appointment_cancelled"
	NotifyAppointmentRescheduled NotificationType = "appointment_rescheduled"
	NotifyAppointmentCompleted   NotificationType = "appointment_completed"
	NotifyDoctorApproved         NotificationType = "doctor_approved"
	NotifyFollowUpReminder       NotificationType = "follow_up_reminder"
	NotifySystem                 NotificationType = "system_notification"
)

// EntityModel names the kind of entity a notification points at.
type EntityModel string

const (
	EntityAppointment EntityModel = "Appointment"
	EntityUser        EntityModel = "User"
)

// Notification is a stored message to a user, emitted as a side effect of
// booking and status transitions. Only the Read flag ever changes after
// creation.
type Notification struct {
	BaseModel
	RecipientID     string           `gorm:"size:36;index" json:"recipientId"`
	SenderID        string           `gorm:"size:36" json:"senderId,omitempty"`
	Type            NotificationType `gorm:"size:40" json:"type"`
	Message         string           `gorm:"type:text" json:"message"`
	Read            bool             `gorm:"default:false" json:"read"`
	RelatedEntityID string           `gorm:"size:36" json:"relatedEntityId,omitempty"`
	EntityModel     EntityModel      `gorm:"size:20" json:"entityModel,omitempty"`

	// Relations
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
}
