package config

// Facility IDs for the campus recreation counter API.
var FacilityIDs = map[string]int{
	"bfit":               803,
	"john-wooden-center": 802,
}

// FacilityCountURL returns a flat list of zone counters for every facility
// on the account; rows are filtered by FacilityId on our side.
const FacilityCountURL = "https://goboardapi.azurewebsites.net/api/FacilityCount/GetCountsByAccount?AccountAPIKey=73829a91-48cb-4b7b-bd0b-8cf4134c04cd"

// GymHours holds the published schedules per gym slug. The recreation site has
// no machine-readable hours feed, so these are maintained by hand.
type GymHours struct {
	Regular map[string]string
	Special map[string]string
}

var GymHoursBySlug = map[string]GymHours{
	"bfit": {
		Regular: map[string]string{
			"Monday":    "6:00 AM - 1:00 AM",
			"Tuesday":   "6:00 AM - 1:00 AM",
			"Wednesday": "6:00 AM - 1:00 AM",
			"Thursday":  "6:00 AM - 1:00 AM",
			"Friday":    "6:00 AM - 9:00 PM",
			"Saturday":  "9:00 AM - 6:00 PM",
			"Sunday":    "9:00 AM - 11:00 PM",
		},
		Special: map[string]string{
			"2025-01-26": "1:00 PM - 11:00 PM",
			"2025-02-15": "9:00 AM - 6:00 PM",
			"2025-02-16": "9:00 AM - 6:00 PM",
			"2025-02-17": "9:00 AM - 6:00 PM",
			"2025-03-15": "9:00 AM - 6:00 PM",
			"2025-03-22": "CLOSED",
			"2025-05-24": "9:00 AM - 6:00 PM",
			"2025-05-25": "9:00 AM - 6:00 PM",
			"2025-05-26": "9:00 AM - 6:00 PM",
		},
	},
	"john-wooden-center": {
		Regular: map[string]string{
			"Monday":    "5:15 AM - 1:00 AM",
			"Tuesday":   "5:15 AM - 1:00 AM",
			"Wednesday": "5:15 AM - 1:00 AM",
			"Thursday":  "5:15 AM - 1:00 AM",
			"Friday":    "5:15 AM - 10:00 PM",
			"Saturday":  "8:00 AM - 8:00 PM",
			"Sunday":    "8:00 AM - 11:00 PM",
		},
		Special: map[string]string{
			"2025-01-20": "9:00 AM - 6:00 PM",
			"2025-02-15": "9:00 AM - 6:00 PM",
			"2025-02-16": "9:00 AM - 6:00 PM",
			"2025-02-17": "9:00 AM - 6:00 PM",
			"2025-05-26": "8:00 AM - 8:00 PM",
		},
	},
}
