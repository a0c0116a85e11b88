package navigation

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// QueryKey is the query-string parameter carrying a navigation request.
const QueryKey = "nav"

// Page identifies one of the landing site's pages. The zero value is Home.
type Page uint8

const (
	Home Page = iota
	Login
	Menu
	Services
	Offers
	Contacts
)

var ErrUnknownPage = errors.New("unknown page")

var pageIDs = [...]string{
	Home:     "home",
	Login:    "login",
	Menu:     "menu",
	Services: "services",
	Offers:   "offers",
	Contacts: "contacts",
}

// All returns every page of the closed set in declaration order.
func All() []Page {
	pages := make([]Page, len(pageIDs))
	for i := range pageIDs {
		pages[i] = Page(i)
	}
	return pages
}

// Parse converts an external page id into a Page. Surrounding whitespace is
// ignored, matching is case-sensitive.
func Parse(raw string) (Page, error) {
	id := strings.TrimSpace(raw)
	for i, known := range pageIDs {
		if id == known {
			return Page(i), nil
		}
	}
	return Home, fmt.Errorf("%w: %q", ErrUnknownPage, raw)
}

func (p Page) Valid() bool {
	return int(p) < len(pageIDs)
}

func (p Page) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Page(%d)", uint8(p))
	}
	return pageIDs[p]
}

// Title returns the human readable label, e.g. "Contacts".
func (p Page) Title() string {
	// A Caser keeps internal state and must not be shared.
	return cases.Title(language.English).String(p.String())
}

// Href returns the relative link that requests navigation to p.
func (p Page) Href() string {
	return "?" + QueryKey + "=" + p.String()
}

func (p Page) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPage, uint8(p))
	}
	return []byte(pageIDs[p]), nil
}

func (p *Page) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Item represents a navigation link rendered in the shared layout.
type Item struct {
	Label string
	Page  Page
	Href  string
}

// NavbarItems lists the links shown in the navbar. Login is rendered as a
// separate button and is not part of the list.
func NavbarItems() []Item {
	pages := []Page{Home, Menu, Services, Offers, Contacts}
	items := make([]Item, 0, len(pages))
	for _, page := range pages {
		items = append(items, Item{
			Label: page.Title(),
			Page:  page,
			Href:  page.Href(),
		})
	}
	return items
}
