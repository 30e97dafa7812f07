package pacing

// PrayerNames are the five daily prayers in day order, starting from
// Fajr. The daily target is presented as one chunk per prayer.
var PrayerNames = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// PrayerShare is one prayer's portion of the daily target.
type PrayerShare struct {
	Prayer string `json:"prayer"`
	Pages  int    `json:"pages"`
}

// Distribute splits a daily total across slotCount ordered slots.
// Every slot gets floor(total/slots); the remainder goes one page at
// a time to the earliest slots, so reading is front-loaded and the
// same input always yields the same distribution.
// PRE: slotCount > 0; dailyTotal >= 0
// POST: returned slice sums to dailyTotal
func Distribute(dailyTotal, slotCount int) []int {
	if slotCount <= 0 {
		return nil
	}
	base := dailyTotal / slotCount
	remainder := dailyTotal % slotCount

	slots := make([]int, slotCount)
	for i := range slots {
		slots[i] = base
		if i < remainder {
			slots[i]++
		}
	}
	return slots
}

// SplitByPrayers distributes the daily target across the five prayers.
func SplitByPrayers(dailyTotal int) []PrayerShare {
	pages := Distribute(dailyTotal, len(PrayerNames))
	shares := make([]PrayerShare, len(PrayerNames))
	for i, name := range PrayerNames {
		shares[i] = PrayerShare{Prayer: name, Pages: pages[i]}
	}
	return shares
}
