package farm

// Error messages
const (
	ErrMsgReadCatalog      = "failed to read catalog"
	ErrMsgParseCatalog     = "failed to parse catalog"
	ErrMsgMissingCrop      = "catalog is missing crop"
	ErrMsgMissingAnimal    = "catalog is missing animal"
	ErrMsgBadYield         = "crop yield must be positive"
	ErrMsgBadCooldown      = "crop cooldown must not be negative"
	ErrMsgBadPrice         = "price must be positive"
	ErrMsgBadStarting      = "starting coins out of range"
	ErrMsgDuplicateProduct = "duplicate product"
	ErrMsgEmptyProduct     = "product needs an id and payload"
	ErrMsgInvalidDuration  = "invalid duration"
	ErrMsgNoSuchAnimal     = "animal is not for sale"
)

// Log messages
const (
	LogMsgCatalogLoaded   = "Catalog loaded"
	LogMsgHarvested       = "Crop harvested"
	LogMsgAnimalPurchased = "Animal purchased"
	LogMsgCredited        = "Purchase credited"
	LogMsgActionRejected  = "Game action rejected"
	LogMsgActionFailed    = "Game action failed"
	LogMsgDisplayName     = "Refreshing display name"
)

// Retry operation names, used in logs
const (
	opGetOrCreate = "farm.get_or_create"
	opHarvest     = "farm.harvest"
	opPurchase    = "farm.purchase_animal"
	opCredit      = "farm.credit"
	opRename      = "farm.rename"
)
