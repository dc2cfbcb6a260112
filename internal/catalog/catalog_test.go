package catalog

import (
	"testing"
	"time"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

func TestSearchProducts(t *testing.T) {
	products := []models.Product{
		{Title: "Laptop Stand"},
		{Title: "USB Hub"},
		{Title: "Gaming Laptop"},
	}

	got := SearchProducts(products, "LAPTOP")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	if got := SearchProducts(products, ""); len(got) != 3 {
		t.Errorf("empty term must return everything, got %d", len(got))
	}
	if got := SearchProducts(products, "printer"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestSuggestionsCapped(t *testing.T) {
	titles := []string{"web a", "web b", "web c", "web d", "web e", "web f", "other"}

	got := Suggestions(titles, "web", 5)
	if len(got) != 5 {
		t.Errorf("expected suggestions capped at 5, got %d", len(got))
	}
	if got := Suggestions(titles, "", 5); got != nil {
		t.Errorf("empty term must yield no suggestions, got %v", got)
	}
}

func TestFilterEvents(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		{Title: "Tech Expo", Description: "hardware showcase", Location: "Kigali", Date: now.AddDate(0, 1, 0)},
		{Title: "Go Meetup", Description: "monthly meetup", Location: "Huye", Date: now.AddDate(0, -1, 0)},
		{Title: "Cloud Summit", Description: "kubernetes talks", Location: "Kigali", Date: now.AddDate(0, 2, 0)},
	}

	if got := FilterEvents(events, EventsUpcoming, "", now); len(got) != 2 {
		t.Errorf("expected 2 upcoming events, got %d", len(got))
	}
	if got := FilterEvents(events, EventsPast, "", now); len(got) != 1 {
		t.Errorf("expected 1 past event, got %d", len(got))
	}
	if got := FilterEvents(events, EventsAll, "", now); len(got) != 3 {
		t.Errorf("expected all 3 events, got %d", len(got))
	}

	// Search spans title, description and location, case-insensitively.
	if got := FilterEvents(events, EventsAll, "KIGALI", now); len(got) != 2 {
		t.Errorf("expected 2 Kigali events, got %d", len(got))
	}
	if got := FilterEvents(events, EventsUpcoming, "kubernetes", now); len(got) != 1 {
		t.Errorf("expected 1 match, got %d", len(got))
	}
	// Empty after narrowing is a valid outcome, not an error.
	if got := FilterEvents(events, EventsPast, "kigali", now); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestFilterProjects(t *testing.T) {
	if got := FilterProjects(Projects, "all", ""); len(got) != len(Projects) {
		t.Errorf(`"all" must keep every project, got %d`, len(got))
	}
	if got := FilterProjects(Projects, "Web Development", ""); len(got) != 2 {
		t.Errorf("expected 2 web development projects, got %d", len(got))
	}

	got := FilterProjects(Projects, "all", "crm")
	if len(got) != 1 || got[0].Category != "Web Application" {
		t.Errorf("expected the CRM dashboard, got %+v", got)
	}

	if got := FilterProjects(Projects, "UI/UX Design", "crm"); len(got) != 0 {
		t.Errorf("category and term must both apply, got %+v", got)
	}
}

func TestProjectCategoriesDistinctInOrder(t *testing.T) {
	got := ProjectCategories(Projects)
	want := []string{"Web Development", "Web Application", "UI/UX Design"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}
