package export

import (
	"fmt"

	"visit-route-service/internal/domain"
)

// Table is one block of stop rows. Numbered tables prefix each row with
// its position in the visiting sequence.
type Table struct {
	Title    string     `json:"title"`
	Numbered bool       `json:"numbered"`
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
}

// Section groups the tables of one staff member's round, or one
// unassigned set.
type Section struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Tables   []Table `json:"tables"`
}

// Document is the renderer-agnostic export form of a reconciled schedule.
// Downstream renderers (PDF, spreadsheet) consume it as plain data.
type Document struct {
	Title    string    `json:"title"`
	Weekday  string    `json:"weekday"`
	Date     string    `json:"date"`
	Sections []Section `json:"sections"`
}

var stopHeaders = []string{"Patient", "Visit type", "Address", "Time/Info", "Phone"}

// BuildDocument shapes a schedule into export sections: one per staff
// member with at least one stop (numbered home visits, unnumbered phone
// contacts), then one per unassigned set. Staff with empty rounds produce
// no section at all.
func BuildDocument(
	routes []domain.RouteContainer,
	unassignedPhone []domain.Stop,
	unassignedRegular []domain.Stop,
	weekday string,
	formattedDate string,
) Document {
	doc := Document{
		Title:   fmt.Sprintf("Optimized routes %s, %s", formattedDate, weekday),
		Weekday: weekday,
		Date:    formattedDate,
	}

	for _, route := range routes {
		if len(route.Stops) == 0 {
			continue
		}

		section := Section{
			Title: route.StaffName,
			Subtitle: fmt.Sprintf("Total duration: %v / %v hours - %s",
				route.DurationHours, route.MaxHours, route.Role),
		}

		var regular, phone []domain.Stop
		for _, stop := range route.Stops {
			if stop.VisitType == domain.VisitPhoneContact {
				phone = append(phone, stop)
			} else {
				regular = append(regular, stop)
			}
		}

		if len(regular) > 0 {
			section.Tables = append(section.Tables, stopsTable("Home visits", regular, true))
		}
		if len(phone) > 0 {
			section.Tables = append(section.Tables, stopsTable("Phone contacts", phone, false))
		}

		doc.Sections = append(doc.Sections, section)
	}

	if len(unassignedRegular) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Title:  "Unassigned home visits",
			Tables: []Table{stopsTable("Unassigned home visits", unassignedRegular, true)},
		})
	}
	if len(unassignedPhone) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Title:  "Unassigned phone contacts",
			Tables: []Table{stopsTable("Unassigned phone contacts", unassignedPhone, false)},
		})
	}

	return doc
}

func stopsTable(title string, stops []domain.Stop, numbered bool) Table {
	headers := stopHeaders
	if numbered {
		headers = append([]string{"No."}, stopHeaders...)
	}

	t := Table{
		Title:    title,
		Numbered: numbered,
		Headers:  headers,
		Rows:     make([][]string, 0, len(stops)),
	}

	for i, stop := range stops {
		row := []string{
			stop.Patient,
			string(stop.VisitType),
			stop.Address,
			stop.TimeInfo,
			stop.PhoneNumbers,
		}
		if numbered {
			row = append([]string{fmt.Sprintf("%d", i+1)}, row...)
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}
