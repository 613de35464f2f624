package amadeus

// Raw payload shapes for the flight-offers search endpoint. Fields the
// upstream may omit keep their zero value and are substituted with
// documented defaults during normalization.

type offerSearchResponse struct {
	Data []Offer `json:"data"`
}

// Offer is a single upstream flight offer.
type Offer struct {
	ID                    string            `json:"id"`
	NumberOfBookableSeats int               `json:"numberOfBookableSeats"`
	Itineraries           []Itinerary       `json:"itineraries"`
	Price                 OfferPrice        `json:"price"`
	TravelerPricings      []TravelerPricing `json:"travelerPricings"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   OfferEndpoint `json:"departure"`
	Arrival     OfferEndpoint `json:"arrival"`
	CarrierCode string        `json:"carrierCode"`
	Number      string        `json:"number"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
	Duration string `json:"duration"`
}

type OfferEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type OfferPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
	Base     string `json:"base"`
}

type TravelerPricing struct {
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

type FareDetail struct {
	Cabin string `json:"cabin"`
	Class string `json:"class"`
}
