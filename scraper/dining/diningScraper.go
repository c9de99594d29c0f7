package diningscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Hecate946/cs130-project/config"
)

// MenuData is a parsed menu page: station name to item names, plus any
// station images the feast layout carries.
type MenuData struct {
	Stations map[string][]string
	Images   map[string]string
}

type Scraper interface {
	// Occupancy returns (occupants, capacity) for a location. Nil pointers
	// mean unknown; callers must not read them as zero.
	Occupancy(ctx context.Context, slug string) (*int, *int, error)
	// HoursToday returns the currently active hour rule, or an empty map
	// when no rule is active.
	HoursToday(ctx context.Context, slug string) (map[string]string, error)
	// Menu parses the location's menu page. Locations without menu support
	// and failed parses both come back as an empty menu.
	Menu(ctx context.Context, slug string) (MenuData, error)
}

type scraper struct {
	occuspacePrefix string
	menusPrefix     string
	client          *http.Client
	log             *slog.Logger
}

func New(occuspacePrefix, menusPrefix string, client *http.Client, log *slog.Logger) Scraper {
	return &scraper{
		occuspacePrefix: occuspacePrefix,
		menusPrefix:     menusPrefix,
		client:          client,
		log:             log,
	}
}

func (s *scraper) Occupancy(ctx context.Context, slug string) (*int, *int, error) {
	id, ok := config.OccuspaceIDs[slug]
	if !ok {
		return nil, nil, fmt.Errorf("unknown dining slug %q", slug)
	}

	var payload struct {
		Data struct {
			People   int `json:"people"`
			Capacity int `json:"capacity"`
		} `json:"data"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("%s/%d", s.occuspacePrefix, id), &payload); err != nil {
		return nil, nil, err
	}
	occupants, capacity := payload.Data.People, payload.Data.Capacity
	return &occupants, &capacity, nil
}

func (s *scraper) HoursToday(ctx context.Context, slug string) (map[string]string, error) {
	id, ok := config.OccuspaceIDs[slug]
	if !ok {
		return nil, fmt.Errorf("unknown dining slug %q", slug)
	}

	var payload struct {
		Data []struct {
			Rules []struct {
				Active bool              `json:"active"`
				Hours  map[string]string `json:"hours"`
			} `json:"rules"`
		} `json:"data"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("%s/%d/hours", s.occuspacePrefix, id), &payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		return map[string]string{}, nil
	}
	for _, rule := range payload.Data[0].Rules {
		if rule.Active {
			return rule.Hours, nil
		}
	}
	return map[string]string{}, nil
}

func (s *scraper) Menu(ctx context.Context, slug string) (MenuData, error) {
	empty := MenuData{Stations: map[string][]string{}, Images: map[string]string{}}

	info, ok := config.MenuEnabledRestaurants[slug]
	if !ok {
		return empty, nil
	}

	pageURL := fmt.Sprintf("%s/%s", s.menusPrefix, info.MenuName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return empty, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return empty, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return empty, fmt.Errorf("menu page for %s returned %s", slug, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("parse menu page for %s: %w", slug, err)
	}

	switch info.ScraperType {
	case config.MenuScraperFeast:
		return parseFeastMenu(doc, pageURL), nil
	default:
		return parseStandardMenu(doc), nil
	}
}

// parseStandardMenu handles the regular dining layout: each li.sect-item
// opens with the station name as a bare text node, and every anchor inside
// the section is one menu item.
func parseStandardMenu(doc *goquery.Document) MenuData {
	menu := MenuData{Stations: map[string][]string{}, Images: map[string]string{}}
	doc.Find("li.sect-item").Each(func(_ int, section *goquery.Selection) {
		station := strings.TrimSpace(section.Contents().First().Text())
		if station == "" {
			return
		}
		items := []string{}
		section.Find("a").Each(func(_ int, a *goquery.Selection) {
			if item := strings.TrimSpace(a.Text()); item != "" {
				items = append(items, item)
			}
		})
		menu.Stations[station] = items
	})
	return menu
}

// parseFeastMenu handles the Feast layout: h2/h3 headers open a section, an
// adjacent image sibling (unless it is the "webcode" badge) becomes the
// section image, and each following menu-item's recipe link is one item.
func parseFeastMenu(doc *goquery.Document, pageURL string) MenuData {
	menu := MenuData{Stations: map[string][]string{}, Images: map[string]string{}}
	base, _ := url.Parse(pageURL)

	current := ""
	doc.Find("h2, h3, .menu-item").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if name == "h2" || name == "h3" {
			header := strings.TrimSpace(sel.Text())
			if header == "" {
				return
			}
			current = header
			menu.Stations[current] = []string{}

			img := sel.Next()
			if img.Is("img") {
				cls, _ := img.Attr("class")
				if !strings.Contains(cls, "webcode") {
					if src, ok := img.Attr("src"); ok {
						menu.Images[current] = absolutize(base, src)
					}
				}
			}
			return
		}

		if current == "" {
			return
		}
		item := strings.TrimSpace(sel.Find("a.recipelink").First().Text())
		if item == "" {
			// Some layouts use a plain anchor for the item name.
			item = strings.TrimSpace(sel.Find("a").First().Text())
		}
		if item != "" {
			menu.Stations[current] = append(menu.Stations[current], item)
		}
	})
	return menu
}

func absolutize(base *url.URL, src string) string {
	if base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

func (s *scraper) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %s", rawURL, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}
