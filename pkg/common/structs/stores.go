package structs

// Store is a rated storefront record.
type Store struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email,omitempty"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating,omitempty"`
	OwnerID int     `json:"ownerId,omitempty"`
}

// OwnedStore is the store summary the API joins onto a store owner record.
type OwnedStore struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
}

// StoreOwner is a store-owner user with their (possibly absent) store joined
// in. The API emits the association under a capital-S "Store" key.
type StoreOwner struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Address string      `json:"address,omitempty"`
	Store   *OwnedStore `json:"Store,omitempty"`
}

// CreateStoreInput is the payload for POST /admin/stores.
type CreateStoreInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	OwnerID int    `json:"ownerId"`
}
