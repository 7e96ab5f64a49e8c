package domain

import "time"

// ParsedListing holds the fields inferred from unstructured listing text.
// Zestimate always carries a value; it defaults to EstimateNotAvailable
// when no automated valuation figure was found in the text.
type ParsedListing struct {
	Address        string `json:"address,omitempty"`
	Price          string `json:"price,omitempty"`
	Zestimate      string `json:"zestimate"`
	MonthlyPayment string `json:"monthlyPayment,omitempty"`
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	Notes          string `json:"notes,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// EstimateNotAvailable is the sentinel stored when no valuation estimate
// appears in the source text.
const EstimateNotAvailable = "Not available"

// HasDetails reports whether extraction produced enough to be useful.
// A listing with neither address nor price is treated as a failed parse.
func (p *ParsedListing) HasDetails() bool {
	return p.Address != "" || p.Price != ""
}

// ScrapedProperty is the raw output of the headless-browser scraper.
// Date is the site's display string (e.g. "Saturday, June 21"); the API
// layer normalizes it before returning it to clients.
type ScrapedProperty struct {
	Address  string `json:"address,omitempty"`
	Price    string `json:"price,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// OpenHouse is a tracked property listing owned by a user.
type OpenHouse struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	Address        string    `json:"address"`
	Price          string    `json:"price"`
	Zestimate      string    `json:"zestimate,omitempty"`
	MonthlyPayment string    `json:"monthlyPayment,omitempty"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	ImageData      string    `json:"imageData,omitempty"`
	ListingURL     string    `json:"listingUrl,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Visited        bool      `json:"visited"`
	Favorited      bool      `json:"favorited"`
	Disliked       bool      `json:"disliked"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OpenHouseUpdate carries a partial update; nil fields are left unchanged.
type OpenHouseUpdate struct {
	Address        *string `json:"address"`
	Price          *string `json:"price"`
	Zestimate      *string `json:"zestimate"`
	MonthlyPayment *string `json:"monthlyPayment"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	ImageURL       *string `json:"imageUrl"`
	ImageData      *string `json:"imageData"`
	ListingURL     *string `json:"listingUrl"`
	Notes          *string `json:"notes"`
	Visited        *bool   `json:"visited"`
	Favorited      *bool   `json:"favorited"`
	Disliked       *bool   `json:"disliked"`
}

// User is a registered account. Password is the bcrypt hash and is never
// serialized.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats summarizes a user's tracked open houses.
type Stats struct {
	Total      int `json:"total"`
	ThisWeek   int `json:"thisWeek"`
	NextWeek   int `json:"nextWeek"`
	Visited    int `json:"visited"`
	NotVisited int `json:"notVisited"`
	Liked      int `json:"liked"`
	Disliked   int `json:"disliked"`
}
