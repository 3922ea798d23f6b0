package entity

// Customer representa un socio del programa de puntos (directorio de clientes).
type Customer struct {
	CPF    string
	Name   string
	DDD    string
	Phone  string
	DDD2   string
	Phone2 string
}
