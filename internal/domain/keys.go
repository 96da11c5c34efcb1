package domain

// Storage keys. Each names one JSON-serialized record in the key-value store.
// The literal strings match the key names used by the browser client.
const (
	KeySession   = "travelPlannerAuth"
	KeyUsers     = "travelPlannerUsers"
	KeyChecklist = "travelChecklistData"
	KeyTrip      = "advancedTripItinerary"
	KeyNextTrip  = "nextTrip"

	// KeyWishlistPrefix starts every per-user wishlist key. See WishlistKey.
	KeyWishlistPrefix = "wishlist_"
)
