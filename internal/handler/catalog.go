package handler

import (
	"net/http"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
)

// CropView describes one crop for the shop screen
type CropView struct {
	Kind            domain.CropKind `json:"kind"`
	Yield           int64           `json:"yield"`
	CooldownSeconds int64           `json:"cooldownSeconds"`
}

// AnimalView describes one animal for the shop screen
type AnimalView struct {
	Kind  domain.AnimalKind `json:"kind"`
	Price int64             `json:"price"`
}

// ProductView describes one Stars product
type ProductView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceStars  int64  `json:"priceStars"`
}

// CatalogResponse is the body of GET /api/v1/catalog
type CatalogResponse struct {
	Version  string        `json:"version"`
	Crops    []CropView    `json:"crops"`
	Animals  []AnimalView  `json:"animals"`
	Products []ProductView `json:"products"`
}

// HandleGetCatalog returns the crops, animals and Stars products on offer
// @Summary Game catalog
// @Tags farm
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /api/v1/catalog [get]
func HandleGetCatalog(catalog *farm.Catalog) http.HandlerFunc {
	resp := buildCatalogResponse(catalog)
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}

func buildCatalogResponse(catalog *farm.Catalog) CatalogResponse {
	resp := CatalogResponse{Version: catalog.Version}

	for _, kind := range domain.AllCrops() {
		def := catalog.Crops[kind]
		resp.Crops = append(resp.Crops, CropView{
			Kind:            kind,
			Yield:           def.Yield,
			CooldownSeconds: int64(time.Duration(def.Cooldown).Seconds()),
		})
	}
	for _, kind := range domain.AllAnimals() {
		resp.Animals = append(resp.Animals, AnimalView{Kind: kind, Price: catalog.Animals[kind].Price})
	}
	for _, p := range catalog.Products {
		resp.Products = append(resp.Products, ProductView{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			PriceStars:  p.PriceStars,
		})
	}
	return resp
}
