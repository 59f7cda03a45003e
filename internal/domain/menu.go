package domain

// MenuOption is one entry of the per-day "add item" menu.
type MenuOption struct {
	Type  ActivityType
	Label string
}

// AddMenu is the fixed list of variants a user can add to a day.
// NOTE items are created only by the generator.
var AddMenu = []MenuOption{
	{Type: ActivityFlight, Label: "Flight"},
	{Type: ActivityHotel, Label: "Hotel"},
	{Type: ActivityActivity, Label: "Activity"},
	{Type: ActivityFood, Label: "Food & Drink"},
	{Type: ActivityTransit, Label: "Transit"},
	{Type: ActivityCustom, Label: "Others"},
}

// Field is an editable input shown for an item. Detail is true when Key
// addresses the details map rather than a top-level item field.
type Field struct {
	Key         string
	Placeholder string
	Detail      bool
}

// FieldLayout returns the inputs shown for a variant, in display order.
// This is presentation policy only: storage accepts any detail key on any
// variant.
func FieldLayout(t ActivityType) []Field {
	switch t {
	case ActivityFlight:
		return []Field{
			{Key: DetailFlightNumber, Placeholder: "Flight #", Detail: true},
			{Key: DetailFrom, Placeholder: "FROM", Detail: true},
			{Key: DetailTo, Placeholder: "TO", Detail: true},
			{Key: "location", Placeholder: "Gate / Terminal"},
		}
	case ActivityHotel:
		return []Field{
			{Key: "title", Placeholder: "Hotel Name"},
			{Key: "location", Placeholder: "Address"},
		}
	case ActivityFood:
		return []Field{
			{Key: "title", Placeholder: "Restaurant Name"},
			{Key: "location", Placeholder: "Address"},
		}
	case ActivityCustom:
		return []Field{
			{Key: "title", Placeholder: "Custom Item Name"},
			{Key: "location", Placeholder: "Location / Details"},
		}
	default:
		return []Field{
			{Key: "title", Placeholder: "Activity Title"},
			{Key: "location", Placeholder: "Location / Details"},
		}
	}
}
