// Package ordernum genera números de orden locales. Es la única pieza de
// numeración que no asigna el CRM: el número viaja en el payload de creación
// y el CRM lo almacena tal cual.
package ordernum

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// counter sufijo de 24 bits: arranca en un valor aleatorio por proceso y
// avanza secuencialmente, así dos números del mismo segundo nunca chocan
// dentro del proceso. Entre procesos la unicidad es probabilística
// (segundo de creación + semilla aleatoria), suficiente para la tasa de
// escritura esperada.
var counter uint32

func init() {
	u := uuid.New()
	counter = binary.BigEndian.Uint32(u[:4])
}

// Generate produce un número con formato ORD-<timestamp UTC>-<6 hex>.
func Generate() string {
	n := atomic.AddUint32(&counter, 1) & 0xFFFFFF
	return fmt.Sprintf("ORD-%s-%06X", time.Now().UTC().Format("20060102150405"), n)
}
