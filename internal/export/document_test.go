package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
)

func stop(name string, visitType domain.VisitType) domain.Stop {
	return domain.Stop{
		Patient:      name,
		Address:      "addr " + name,
		VisitType:    visitType,
		PhoneNumbers: "111\n222",
	}
}

func TestBuildDocumentSkipsEmptyRoutes(t *testing.T) {
	routes := []domain.RouteContainer{
		{StaffName: "Anna", Role: "nurse", DurationHours: 2.5, MaxHours: 7,
			Stops: []domain.Stop{stop("P1", domain.VisitHomeVisit)}},
		{StaffName: "Bert", Stops: []domain.Stop{}},
	}

	doc := BuildDocument(routes, nil, nil, "Monday", "10_01_2024")

	assert.Equal(t, "Optimized routes 10_01_2024, Monday", doc.Title)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Anna", doc.Sections[0].Title)
	assert.Contains(t, doc.Sections[0].Subtitle, "2.5 / 7 hours")
	assert.Contains(t, doc.Sections[0].Subtitle, "nurse")
}

func TestBuildDocumentSplitsVisitKinds(t *testing.T) {
	routes := []domain.RouteContainer{{
		StaffName: "Anna",
		Stops: []domain.Stop{
			stop("P1", domain.VisitHomeVisit),
			stop("T1", domain.VisitPhoneContact),
			stop("P2", domain.VisitNewIntake),
		},
	}}

	doc := BuildDocument(routes, nil, nil, "Monday", "10_01_2024")

	require.Len(t, doc.Sections, 1)
	tables := doc.Sections[0].Tables
	require.Len(t, tables, 2)

	// Physical visits come first, numbered in driving order; phone
	// contacts follow unnumbered.
	assert.Equal(t, "Home visits", tables[0].Title)
	assert.True(t, tables[0].Numbered)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, "1", tables[0].Rows[0][0])
	assert.Equal(t, "P1", tables[0].Rows[0][1])
	assert.Equal(t, "2", tables[0].Rows[1][0])
	assert.Equal(t, "P2", tables[0].Rows[1][1])

	assert.Equal(t, "Phone contacts", tables[1].Title)
	assert.False(t, tables[1].Numbered)
	require.Len(t, tables[1].Rows, 1)
	assert.Equal(t, "T1", tables[1].Rows[0][0])
}

func TestBuildDocumentUnassignedSections(t *testing.T) {
	unassigned := []domain.Stop{stop("P9", domain.VisitHomeVisit)}
	phones := []domain.Stop{stop("T9", domain.VisitPhoneContact)}

	doc := BuildDocument(nil, phones, unassigned, "Friday", "12_01_2024")

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Unassigned home visits", doc.Sections[0].Title)
	assert.True(t, doc.Sections[0].Tables[0].Numbered)
	assert.Equal(t, "Unassigned phone contacts", doc.Sections[1].Title)
	assert.False(t, doc.Sections[1].Tables[0].Numbered)
}

func TestRenderText(t *testing.T) {
	routes := []domain.RouteContainer{{
		StaffName: "Anna", Role: "nurse", DurationHours: 1, MaxHours: 7,
		Stops: []domain.Stop{stop("P1", domain.VisitHomeVisit)},
	}}

	out := RenderText(BuildDocument(routes, nil, nil, "Monday", "10_01_2024"))

	assert.True(t, strings.HasPrefix(out, "Optimized routes 10_01_2024, Monday\n"))
	assert.Contains(t, out, "== Anna ==")
	assert.Contains(t, out, "No.\tPatient\tVisit type")
	// Line-separated phone numbers flatten to a single cell.
	assert.Contains(t, out, "111, 222")
}
