package domain

// ApplicationFilter narrows the master's application list.
type ApplicationFilter struct {
	DirectionIDs           []uint
	DraftYears             []int
	DraftSeasons           []int
	BookingAffiliationIDs  []uint
	WishlistAffiliationIDs []uint
	// PreferDirectionIDs floats applications that chose any of these
	// directions to the top of the ordering.
	PreferDirectionIDs []uint
	Page               int
	PageSize           int
}

// ApplicationListItem is the read model of one application row assembled in
// application code after a plain fetch, instead of database-side aggregation.
type ApplicationListItem struct {
	Application Application `json:"application"`
	Member      Member      `json:"member"`
	Educations  []Education `json:"educations,omitempty"`
	Directions  []Direction `json:"directions,omitempty"`

	// Master-context flags. Zero-valued for slaves.
	IsBooked     bool `json:"isBooked"`
	IsBookedOur  bool `json:"isBookedOur"`
	CanUnbook    bool `json:"canUnbook"`
	WishlistLen  int  `json:"wishlistLen"`
	IsInWishlist bool `json:"isInWishlist"`
	OurDirection bool `json:"ourDirection"`
	IsViewed     bool `json:"isViewed"`

	Notes []ApplicationNote `json:"notes,omitempty"`
}
