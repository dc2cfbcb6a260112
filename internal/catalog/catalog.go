// Package catalog holds the in-memory narrowing logic for the fetch-and-render
// pages. Everything here filters sequences already fetched from the backend;
// no server-side query parameters are involved.
package catalog

import (
	"strings"
	"time"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// SearchProducts narrows by case-insensitive title substring. An empty term
// returns the input unchanged.
func SearchProducts(products []models.Product, term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), term) {
			out = append(out, p)
		}
	}
	return out
}

// Suggestions returns up to limit titles containing term, for the search box
// dropdown. An empty term yields nothing.
func Suggestions(titles []string, term string, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit <= 0 {
		return nil
	}
	var out []string
	for _, title := range titles {
		if strings.Contains(strings.ToLower(title), term) {
			out = append(out, title)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

type EventFilter string

const (
	EventsAll      EventFilter = "all"
	EventsUpcoming EventFilter = "upcoming"
	EventsPast     EventFilter = "past"
)

// FilterEvents applies the upcoming/past split against now, then a
// case-insensitive search across title, description and location.
func FilterEvents(events []models.Event, filter EventFilter, term string, now time.Time) []models.Event {
	result := events
	switch filter {
	case EventsUpcoming:
		result = filterEventsBy(result, func(e models.Event) bool { return e.Date.After(now) })
	case EventsPast:
		result = filterEventsBy(result, func(e models.Event) bool { return !e.Date.After(now) })
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return result
	}
	return filterEventsBy(result, func(e models.Event) bool {
		return strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.Location), term)
	})
}

func filterEventsBy(events []models.Event, keep func(models.Event) bool) []models.Event {
	var out []models.Event
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// EventTitles projects events to their titles, for Suggestions.
func EventTitles(events []models.Event) []string {
	titles := make([]string, len(events))
	for i, e := range events {
		titles[i] = e.Title
	}
	return titles
}

// ProductTitles projects products to their titles, for Suggestions.
func ProductTitles(products []models.Product) []string {
	titles := make([]string, len(products))
	for i, p := range products {
		titles[i] = p.Title
	}
	return titles
}
