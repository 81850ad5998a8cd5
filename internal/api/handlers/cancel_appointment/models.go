package cancel_appointment

// CancelAppointmentRequest HTTP request model. Тело необязательно.
type CancelAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}
