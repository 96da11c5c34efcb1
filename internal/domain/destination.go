package domain

// Destination is an entry of the static destination catalog.
type Destination struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Location    string   `json:"location" yaml:"location"`
	Region      string   `json:"region" yaml:"region"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Price       string   `json:"price" yaml:"price"`
	PriceLabel  string   `json:"priceLabel" yaml:"priceLabel"`
	Category    string   `json:"category" yaml:"category"`
	Budget      string   `json:"budget" yaml:"budget"`
	Duration    string   `json:"duration" yaml:"duration"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	BestTime    string   `json:"bestTime" yaml:"bestTime"`
	Image       string   `json:"image,omitempty" yaml:"image"`
}

// WishlistKey is the storage key of a user's wishlist of destination ids.
func WishlistKey(email string) string {
	return KeyWishlistPrefix + email
}
