package config

const (
	OccuspacePrefix = "https://testing.occuspace.io/waitz/location"
	MenusPrefix     = "https://menu.dining.ucla.edu/Menus"
)

// OccuspaceIDs maps every dining location slug to its occuspace location id.
// This set is also the authoritative list of known dining slugs for the API.
var OccuspaceIDs = map[string]int{
	"bplate":            77,
	"deneve":            78,
	"bruin-cafe":        79,
	"the-drey":          81,
	"rendezvous":        82,
	"study-hedrick":     83,
	"epicuria-covel":    88,
	"feast":             100,
	"epicuria-ackerman": 108,
}

type MenuScraperType string

const (
	MenuScraperStandard MenuScraperType = "standard"
	MenuScraperFeast    MenuScraperType = "feast"
)

type MenuInfo struct {
	MenuName    string // path component in the menu URL
	ScraperType MenuScraperType
}

// MenuEnabledRestaurants lists the dining locations that publish a menu page.
var MenuEnabledRestaurants = map[string]MenuInfo{
	"bplate":         {MenuName: "BruinPlate", ScraperType: MenuScraperStandard},
	"deneve":         {MenuName: "DeNeve", ScraperType: MenuScraperStandard},
	"epicuria-covel": {MenuName: "Epicuria", ScraperType: MenuScraperStandard},
	"feast":          {MenuName: "FeastAtRieber", ScraperType: MenuScraperFeast},
}

func SupportsMenuScraping(slug string) bool {
	_, ok := MenuEnabledRestaurants[slug]
	return ok
}
