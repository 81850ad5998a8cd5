package complete_appointment

// CompleteAppointmentRequest HTTP request model. Тело необязательно.
type CompleteAppointmentRequest struct {
	Notes string `json:"notes,omitempty"`
}
