// Importa productos al catálogo del CRM en lote desde un archivo JSON.
//
// Uso: seed -file products.json
// Formato: [{"externalId": "SKU-1", "name": "Producto", "initialPrice": "19.90"}, ...]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/retailcrm-bff/internal/infrastructure/retailcrm"
	"github.com/jhoicas/retailcrm-bff/pkg/config"
	"github.com/jhoicas/retailcrm-bff/pkg/logger"
	"github.com/shopspring/decimal"
)

// catálogo por defecto del CRM para productos importados.
const defaultCatalogID = 1

type seedProduct struct {
	ExternalID   string          `json:"externalId"`
	Name         string          `json:"name"`
	InitialPrice decimal.Decimal `json:"initialPrice"`
}

func main() {
	file := flag.String("file", "products.json", "archivo JSON con los productos a importar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer archivo de productos")
	}

	var seeds []seedProduct
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatal().Err(err).Msg("parsear archivo de productos")
	}
	if len(seeds) == 0 {
		log.Fatal().Msg("el archivo no contiene productos")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	crm := retailcrm.NewClient(cfg.CRM)

	// Los productos ya presentes en el catálogo (mismo externalId) se omiten
	// para que el comando sea re-ejecutable sobre el mismo archivo.
	payload := make([]retailcrm.ProductPayload, 0, len(seeds))
	for _, s := range seeds {
		existing, err := crm.GetProducts(ctx, s.ExternalID)
		if err != nil {
			log.Fatal().Err(err).Str("external_id", s.ExternalID).Msg("consultar catálogo del CRM")
		}
		if len(existing) > 0 {
			log.Warn().Str("external_id", s.ExternalID).Msg("producto ya existe en el catálogo, se omite")
			continue
		}
		payload = append(payload, retailcrm.ProductPayload{
			ExternalID:   s.ExternalID,
			Name:         s.Name,
			CatalogID:    defaultCatalogID,
			Type:         "product",
			InitialPrice: s.InitialPrice,
		})
	}
	if len(payload) == 0 {
		log.Info().Int("requested", len(seeds)).Msg("todos los productos ya existen, nada que importar")
		return
	}

	added, err := crm.BatchCreateProducts(ctx, payload)
	if err != nil {
		log.Fatal().Err(err).Msg("importar productos al CRM")
	}

	log.Info().Int("requested", len(payload)).Ints("added_ids", added).Msg("importación completada")
}
