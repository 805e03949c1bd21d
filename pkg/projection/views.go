package projection

import (
	"strconv"

	"github.com/ratehub/adminkit/pkg/common/structs"
)

// Canned views matching the dashboard tables. Each view names the fields its
// search box covers; sortable fields go through the same accessor.

// UsersView searches name, email and address.
var UsersView = View[structs.User]{
	SearchFields: []string{"name", "email", "address"},
	Value: func(u structs.User, field string) string {
		switch field {
		case "name":
			return u.Name
		case "email":
			return u.Email
		case "address":
			return u.Address
		case "role":
			return string(u.Role)
		default:
			return ""
		}
	},
}

// AdminsView searches name, email and address.
var AdminsView = View[structs.Admin]{
	SearchFields: []string{"name", "email", "address"},
	Value: func(a structs.Admin, field string) string {
		switch field {
		case "name":
			return a.Name
		case "email":
			return a.Email
		case "address":
			return a.Address
		default:
			return ""
		}
	},
}

// StoreOwnersView additionally searches the joined store's name; owners
// without a store read as "" there.
var StoreOwnersView = View[structs.StoreOwner]{
	SearchFields: []string{"name", "email", "address", "store"},
	Value: func(o structs.StoreOwner, field string) string {
		switch field {
		case "name":
			return o.Name
		case "email":
			return o.Email
		case "address":
			return o.Address
		case "store":
			if o.Store == nil {
				return ""
			}
			return o.Store.Name
		default:
			return ""
		}
	},
}

// StoresView searches name, email and address.
var StoresView = View[structs.Store]{
	SearchFields: []string{"name", "email", "address"},
	Value: func(s structs.Store, field string) string {
		switch field {
		case "name":
			return s.Name
		case "email":
			return s.Email
		case "address":
			return s.Address
		default:
			return ""
		}
	},
}

// RatingsView searches the rating author and comment.
var RatingsView = View[structs.Rating]{
	SearchFields: []string{"userName", "userEmail", "comment"},
	Value: func(r structs.Rating, field string) string {
		switch field {
		case "userName":
			return r.UserName
		case "userEmail":
			return r.UserEmail
		case "comment":
			return r.Comment
		case "rating":
			return strconv.Itoa(r.Rating)
		case "createdAt":
			return r.CreatedAt
		default:
			return ""
		}
	},
}
