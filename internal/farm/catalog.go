package farm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/osse101/FarmBot_Go/configs"
	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Duration is a time.Duration written as a Go duration string in JSON
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidDuration, err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidDuration, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// CropDef is the regrow time and coin yield of one crop
type CropDef struct {
	Cooldown Duration `json:"cooldown"`
	Yield    int64    `json:"yield"`
}

// AnimalDef is the coin price of one animal
type AnimalDef struct {
	Price int64 `json:"price"`
}

// Product is something sold for Telegram Stars
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Payload     string `json:"payload"`
	PriceStars  int64  `json:"price_stars"`
}

// Catalog is the server-side source of every price, yield and cooldown
type Catalog struct {
	Version       string                          `json:"version"`
	StartingCoins int64                           `json:"starting_coins"`
	Crops         map[domain.CropKind]CropDef     `json:"crops"`
	Animals       map[domain.AnimalKind]AnimalDef `json:"animals"`
	Products      []Product                       `json:"products"`
}

// LoadCatalog reads the catalog at path, or the embedded default when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	data := configs.Catalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgReadCatalog, err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a catalog document
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every crop and animal is priced and every product is unique
func (c *Catalog) Validate() error {
	var errs []error

	if c.StartingCoins < 0 || c.StartingCoins > domain.MaxBalance {
		errs = append(errs, fmt.Errorf("%s: %d", ErrMsgBadStarting, c.StartingCoins))
	}

	for _, crop := range domain.AllCrops() {
		def, ok := c.Crops[crop]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%s: %s", ErrMsgMissingCrop, crop))
		case def.Yield <= 0 || def.Yield > domain.MaxBalance:
			errs = append(errs, fmt.Errorf("%s: %s", ErrMsgBadYield, crop))
		case def.Cooldown < 0:
			errs = append(errs, fmt.Errorf("%s: %s", ErrMsgBadCooldown, crop))
		}
	}
	for kind := range c.Crops {
		if !kind.IsCrop() {
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrUnknownItem, kind))
		}
	}

	for _, animal := range domain.AllAnimals() {
		def, ok := c.Animals[animal]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%s: %s", ErrMsgMissingAnimal, animal))
		case def.Price <= 0 || def.Price > domain.MaxBalance:
			errs = append(errs, fmt.Errorf("%s: %s", ErrMsgBadPrice, animal))
		}
	}
	for kind := range c.Animals {
		if !kind.IsAnimal() {
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrUnknownItem, kind))
		}
	}

	seen := make(map[string]struct{}, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" || p.Payload == "" {
			errs = append(errs, errors.New(ErrMsgEmptyProduct))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: %s", ErrMsgDuplicateProduct, p.ID))
		}
		seen[p.ID] = struct{}{}
		if p.PriceStars <= 0 {
			errs = append(errs, fmt.Errorf("%s: %s", ErrMsgBadPrice, p.ID))
		}
	}

	return errors.Join(errs...)
}

// Rules returns the harvest rules derived from the catalog
func (c *Catalog) Rules(devMode bool) Rules {
	r := Rules{
		Cooldowns: cooldown.Config{
			DevMode:   devMode,
			Cooldowns: make(map[domain.CropKind]time.Duration, len(c.Crops)),
		},
		Yields: make(map[domain.CropKind]int64, len(c.Crops)),
	}
	for crop, def := range c.Crops {
		r.Cooldowns.Cooldowns[crop] = time.Duration(def.Cooldown)
		r.Yields[crop] = def.Yield
	}
	return r
}

// AnimalPrice returns the coin price of kind
func (c *Catalog) AnimalPrice(kind domain.AnimalKind) (int64, bool) {
	def, ok := c.Animals[kind]
	return def.Price, ok
}

// Product looks up a Stars product by id
func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ProductByPayload looks up the Stars product that carries payload
func (c *Catalog) ProductByPayload(payload string) (Product, bool) {
	for _, p := range c.Products {
		if p.Payload == payload {
			return p, true
		}
	}
	return Product{}, false
}
