package scenarios

import "sort"

const (
	SoccerTourists   = "soccer_tourists"
	SeasonalTourists = "seasonal_tourists"
)

var registry = map[string]EstimateHandler{
	SoccerTourists:   &SoccerHandler{},
	SeasonalTourists: &SeasonalHandler{},
}

func Get(name string) (EstimateHandler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Names returns the registered estimator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
