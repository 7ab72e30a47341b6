package lineup

// Column is one stage column of a schedule table.
type Column struct {
	Stage string
	// Class is applied to cells that have a performer.
	Class string
}

// Slot is one time row. Performers lines up with the day's Columns; an
// empty string is a free slot.
type Slot struct {
	Time       string
	Performers []string
}

// Day is a fixed schedule table.
type Day struct {
	Name    string
	Columns []Column
	Slots   []Slot
}

var (
	echo     = Column{Stage: "Echo Stage", Class: "stage-echo"}
	sunset   = Column{Stage: "Sunset Arena", Class: "stage-sunset"}
	skyline  = Column{Stage: "Skyline Stage", Class: "stage-skyline"}
	bassline = Column{Stage: "Bassline Tent", Class: "stage-bassline"}
)

// Friday returns the Friday table: eleven hourly slots across four stages.
func Friday() Day {
	return Day{
		Name:    "Friday",
		Columns: []Column{echo, sunset, skyline, bassline},
		Slots: []Slot{
			{"12:00 PM", []string{"", "", "", ""}},
			{"1:00 PM", []string{"", "", "", "The Lumineers"}},
			{"2:00 PM", []string{"", "", "", ""}},
			{"3:00 PM", []string{"", "Travis Scott", "", ""}},
			{"4:00 PM", []string{"", "", "", ""}},
			{"5:00 PM", []string{"", "", "", "Snarky Puppies"}},
			{"6:00 PM", []string{"", "", "", ""}},
			{"7:00 PM", []string{"Imagine Dragons", "", "", ""}},
			{"8:00 PM", []string{"", "", "", ""}},
			{"9:00 PM", []string{"", "", "Ariana Grande", ""}},
			{"10:00 PM", []string{"", "", "", ""}},
		},
	}
}

// Saturday returns the Saturday table. The Bassline Tent is closed.
func Saturday() Day {
	return Day{
		Name:    "Saturday",
		Columns: []Column{echo, sunset, skyline},
		Slots: []Slot{
			{"12:00 PM", []string{"", "", ""}},
			{"1:00 PM", []string{"", "", "Drake"}},
			{"2:00 PM", []string{"", "", ""}},
			{"3:00 PM", []string{"Slipknot", "", ""}},
			{"4:00 PM", []string{"", "", ""}},
			{"5:00 PM", []string{"", "", "Metallica"}},
			{"6:00 PM", []string{"", "", ""}},
			{"7:00 PM", []string{"The Weeknd", "", ""}},
			{"8:00 PM", []string{"", "", ""}},
			{"9:00 PM", []string{"", "Billie Eilish", ""}},
			{"10:00 PM", []string{"", "", ""}},
		},
	}
}
