package api

// Resource identifies one backend collection. Tag keys the query cache;
// every successful mutation on a resource invalidates its tag.
type Resource struct {
	Tag  string
	Path string
	// ListPath overrides Path for collection reads where the backend uses a
	// dedicated route (e.g. /meal/all, /store/all-order).
	ListPath string
}

func (r Resource) listPath() string {
	if r.ListPath != "" {
		return r.ListPath
	}
	return r.Path
}

var (
	Users          = Resource{Tag: "user", Path: "/user"}
	Preferences    = Resource{Tag: "preference", Path: "/preference"}
	GymPlans       = Resource{Tag: "gym-and-fitness-plan", Path: "/gym-and-fitness-plan"}
	BusinessPlans  = Resource{Tag: "business-and-mindset-plan", Path: "/business-and-mindset-plan"}
	MealCategories = Resource{Tag: "meal-category", Path: "/meal-and-recipe-category"}
	Meals          = Resource{Tag: "meal", Path: "/meal", ListPath: "/meal/all"}
	Orders         = Resource{Tag: "order", Path: "/store/order-history", ListPath: "/store/all-order"}
	Notifications  = Resource{Tag: "notification", Path: "/notification"}
)
