// Package entity defines the core business entities for the domain layer.
package entity

// Category is the closed set of spending categories used by budgets,
// subscriptions and transactions.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHousing       Category = "housing"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryShopping      Category = "shopping"
	CategoryEducation     Category = "education"
	CategoryTravel        Category = "travel"
	CategorySubscriptions Category = "subscriptions"
	CategoryPersonal      Category = "personal"
	CategoryOther         Category = "other"
)

// DefaultCategoryColor is the color used for categories without metadata.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the icon used for categories without metadata.
const DefaultCategoryIcon = "tag"

// CategoryInfo holds the display metadata of a category.
type CategoryInfo struct {
	Label string
	Icon  string
	Color string
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryFood:          {Label: "Food & Dining", Icon: "fork.knife", Color: "#F97316"},
	CategoryTransport:     {Label: "Transport", Icon: "car", Color: "#3B82F6"},
	CategoryHousing:       {Label: "Housing", Icon: "house", Color: "#8B5CF6"},
	CategoryUtilities:     {Label: "Utilities", Icon: "bolt", Color: "#EAB308"},
	CategoryEntertainment: {Label: "Entertainment", Icon: "film", Color: "#EC4899"},
	CategoryHealth:        {Label: "Health", Icon: "heart", Color: "#EF4444"},
	CategoryShopping:      {Label: "Shopping", Icon: "bag", Color: "#14B8A6"},
	CategoryEducation:     {Label: "Education", Icon: "book", Color: "#0EA5E9"},
	CategoryTravel:        {Label: "Travel", Icon: "airplane", Color: "#06B6D4"},
	CategorySubscriptions: {Label: "Subscriptions", Icon: "repeat", Color: "#A855F7"},
	CategoryPersonal:      {Label: "Personal", Icon: "person", Color: "#84CC16"},
	CategoryOther:         {Label: "Other", Icon: DefaultCategoryIcon, Color: DefaultCategoryColor},
}

// IsValid reports whether the category belongs to the closed set.
func (c Category) IsValid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the display metadata for the category.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return CategoryInfo{Label: string(c), Icon: DefaultCategoryIcon, Color: DefaultCategoryColor}
}
