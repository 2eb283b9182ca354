package domain

import "sort"

// ItemKind identifies anything that can sit in a player's inventory.
// The set is closed: only the kinds declared below are valid.
type ItemKind string

// CropKind is the subset of item kinds that can be harvested.
type CropKind = ItemKind

// AnimalKind is the subset of item kinds that can be bought.
type AnimalKind = ItemKind

// Crops
const (
	CropCarrot  CropKind = "carrot"
	CropPotato  CropKind = "potato"
	CropWheat   CropKind = "wheat"
	CropPumpkin CropKind = "pumpkin"
)

// Animals
const (
	AnimalChicken AnimalKind = "chicken"
	AnimalPig     AnimalKind = "pig"
	AnimalSheep   AnimalKind = "sheep"
	AnimalCow     AnimalKind = "cow"
)

var crops = map[ItemKind]struct{}{
	CropCarrot:  {},
	CropPotato:  {},
	CropWheat:   {},
	CropPumpkin: {},
}

var animals = map[ItemKind]struct{}{
	AnimalChicken: {},
	AnimalPig:     {},
	AnimalSheep:   {},
	AnimalCow:     {},
}

// IsCrop reports whether k is a harvestable crop.
func (k ItemKind) IsCrop() bool {
	_, ok := crops[k]
	return ok
}

// IsAnimal reports whether k is a purchasable animal.
func (k ItemKind) IsAnimal() bool {
	_, ok := animals[k]
	return ok
}

// Valid reports whether k belongs to the closed item enumeration.
func (k ItemKind) Valid() bool {
	return k.IsCrop() || k.IsAnimal()
}

// ParseItemKind converts a raw string into a known item kind.
func ParseItemKind(s string) (ItemKind, error) {
	k := ItemKind(s)
	if !k.Valid() {
		return "", ErrUnknownItem
	}
	return k, nil
}

// AllCrops returns every crop kind in a stable order.
func AllCrops() []CropKind {
	return sortedKinds(crops)
}

// AllAnimals returns every animal kind in a stable order.
func AllAnimals() []AnimalKind {
	return sortedKinds(animals)
}

func sortedKinds(set map[ItemKind]struct{}) []ItemKind {
	out := make([]ItemKind, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
