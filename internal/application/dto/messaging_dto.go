package dto

// SendResult identificadores devueltos por el proveedor al aceptar un mensaje.
type SendResult struct {
	ZaapID    string `json:"zaapId"`
	MessageID string `json:"messageId"`
}

// ChatMetadataDTO estado del chat con un teléfono según el proveedor.
// Outcome resume el resultado: "Phone found" o el mensaje de error devuelto.
type ChatMetadataDTO struct {
	Phone   string `json:"phone"`
	Found   bool   `json:"found"`
	Outcome string `json:"outcome"`
}
