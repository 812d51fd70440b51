package dto

type CancelAppointmentInput struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}
