package entity

import "time"

// Customer proyección local de un cliente del CRM. El ID lo asigna el CRM;
// el teléfono es el primer número de la lista que devuelve el CRM.
type Customer struct {
	ID           int
	FirstName    string
	LastName     string
	Email        string
	Phone        string // vacío si el CRM no devolvió números
	RegisteredAt time.Time
}
