package timezone

import "time"

// the site renders every timestamp in US Pacific time regardless of the
// requesting client, so all timestamp parsing is anchored here
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
}
