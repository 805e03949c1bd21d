package structs

// Stats is the dashboard aggregate. It depends on the other collections but
// is fetched independently.
type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalStores  int `json:"totalStores"`
	TotalRatings int `json:"totalRatings"`
}

// Rating is a denormalized rating row as shown to a store owner.
type Rating struct {
	ID        int    `json:"id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	CreatedAt string `json:"createdAt,omitempty"`
}
