package order

// Display is how a status is rendered by the admin panel.
type Display struct {
	Label string
	Color string
	Icon  string
}

var statusDisplays = map[Status]Display{
	Pending:        {Label: "Pending", Color: "warning", Icon: "clock"},
	Approved:       {Label: "Approved", Color: "success", Icon: "check-circle"},
	InTransit:      {Label: "In Transit", Color: "info", Icon: "truck"},
	OutForDelivery: {Label: "Out for Delivery", Color: "primary", Icon: "map-pin"},
	Delivered:      {Label: "Delivered", Color: "success", Icon: "package-check"},
	Rejected:       {Label: "Rejected", Color: "danger", Icon: "x-circle"},
	Cancelled:      {Label: "Cancelled", Color: "secondary", Icon: "slash"},
}

var unknownDisplay = Display{Label: "Unknown", Color: "secondary", Icon: "help-circle"}

// Display returns the label, badge color and icon for s.
func (s Status) Display() Display {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return unknownDisplay
}

var groupLabels = map[GroupType]string{
	Hardware: "Hardware",
	Workshop: "Workshop / Warehouse",
	LPO:      "LPO",
	Custom:   "Custom",
}

// Label is the heading used for the group on the order page.
func (g GroupType) Label() string {
	if l, ok := groupLabels[g]; ok {
		return l
	}
	return "Unknown"
}
