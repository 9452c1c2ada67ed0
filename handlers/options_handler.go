// handlers/options_handler.go
package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"assetdesk/models"
	"assetdesk/utils"
)

// Derived dropdown options for the client's filter selectors. Recomputed
// from the collections on demand and cached briefly; staleness of a few
// seconds is fine for filter dropdowns.
var optionsCache = cache.New(30*time.Second, time.Minute)

const optionsCacheKey = "filter-options"

type FilterOptions struct {
	Departments  []string `json:"departments"`
	Locations    []string `json:"locations"`
	DeviceModels []string `json:"deviceModels"`
	LicenseTypes []string `json:"licenseTypes"`
}

func GetOptions(w http.ResponseWriter, r *http.Request) {
	if cached, ok := optionsCache.Get(optionsCacheKey); ok {
		utils.RespondWithJSON(w, http.StatusOK, cached.(FilterOptions))
		return
	}

	employees, err := employeeStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "employee")
		return
	}
	devices, err := deviceStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "device")
		return
	}

	opts := FilterOptions{
		LicenseTypes: []string{models.LicenseSubscription, models.LicensePerpetual},
	}

	departments := make(map[string]bool)
	locations := make(map[string]bool)
	for _, emp := range employees {
		if emp.Department != "" {
			departments[emp.Department] = true
		}
		if emp.Location != "" {
			locations[emp.Location] = true
		}
	}
	deviceModels := make(map[string]bool)
	for _, dev := range devices {
		if dev.Model != "" {
			deviceModels[dev.Model] = true
		}
	}

	opts.Departments = sortedKeys(departments)
	opts.Locations = sortedKeys(locations)
	opts.DeviceModels = sortedKeys(deviceModels)

	optionsCache.Set(optionsCacheKey, opts, cache.DefaultExpiration)
	utils.RespondWithJSON(w, http.StatusOK, opts)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
